package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/keyalign/internal/domain"
)

// ErrInvalidUTF8 is returned for content that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

var extensions = map[string]bool{".ts": true, ".tsx": true, ".mts": true, ".cts": true}

// TSParser implements domain.DeclarationParser for TypeScript sources. It
// only understands as much syntax as it needs to find interface and enum
// bodies.
type TSParser struct{}

var _ domain.DeclarationParser = (*TSParser)(nil)

func New() *TSParser {
	return &TSParser{}
}

func (p *TSParser) Supports(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

func (p *TSParser) ParseFile(path string, content []byte) (*domain.ParsedFile, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("parsing %s: %w", path, ErrInvalidUTF8)
	}
	text := string(content)
	tokens, err := lex(text)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", path, err)
	}
	f := newFile(path, text, tokens)
	return &domain.ParsedFile{
		Path:   path,
		Source: f,
		Bodies: findBodies(f),
	}, nil
}

// ParseSource lexes text without looking for declarations. Hosts use it to
// hand a Source to the checker for bodies they located themselves.
func ParseSource(path, text string) (*File, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", path, err)
	}
	return newFile(path, text, tokens), nil
}
