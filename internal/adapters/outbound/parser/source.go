package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/abdidvp/keyalign/internal/domain"
)

// File is a lexed TypeScript file. It implements domain.Source.
type File struct {
	path   string
	text   string
	tokens []token
	lines  []int // byte offset of each line start
}

var _ domain.Source = (*File)(nil)

func newFile(path, text string, tokens []token) *File {
	return &File{path: path, text: text, tokens: tokens, lines: lineStarts(text)}
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\r' && i+1 < len(text) && text[i+1] == '\n':
			size = 2
			fallthrough
		case isLineTerminator(r):
			starts = append(starts, i+size)
		}
		i += size
	}
	return starts
}

func (f *File) Path() string { return f.path }

func (f *File) Text() string { return f.text }

func (f *File) Len() int { return len(f.text) }

// SliceText returns text[start:end], clamped to the buffer.
func (f *File) SliceText(start, end int) string {
	start = max(0, min(start, len(f.text)))
	end = max(start, min(end, len(f.text)))
	return f.text[start:end]
}

// TokensAround looks up the token starting at offset and returns the spans
// of its neighbours. Comments count as tokens.
func (f *File) TokensAround(offset int) (domain.TokenBounds, bool) {
	i := f.tokenAt(offset)
	if i <= 0 || i+1 >= len(f.tokens) {
		return domain.TokenBounds{}, false
	}
	before, after := f.tokens[i-1], f.tokens[i+1]
	return domain.TokenBounds{
		Before: domain.Span{Start: before.start, End: before.end},
		After:  domain.Span{Start: after.start, End: after.end},
	}, true
}

// tokenAt returns the index of the token starting at offset, or -1.
func (f *File) tokenAt(offset int) int {
	i := sort.Search(len(f.tokens), func(i int) bool { return f.tokens[i].start >= offset })
	if i < len(f.tokens) && f.tokens[i].start == offset {
		return i
	}
	return -1
}

// Position converts a byte offset to a 1-based line and character column.
func (f *File) Position(offset int) domain.Position {
	offset = max(0, min(offset, len(f.text)))
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	return domain.Position{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(f.text[f.lines[line]:offset]) + 1,
	}
}
