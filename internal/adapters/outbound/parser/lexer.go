package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnterminated is returned for a block comment or template literal that
// runs to the end of the file.
var ErrUnterminated = errors.New("unterminated literal")

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokTemplate
	tokNumber
	tokRegex
	tokPunct
	tokComment
)

type token struct {
	kind  tokenKind
	start int
	end   int
	text  string
	// newlineBefore is set when a line break separates this token from the
	// token before it.
	newlineBefore bool
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

var punctuators = []string{
	// longest first
	"...", "===", "!==", "**=", "??=", "&&=", "||=",
	"=>", "==", "!=", "?.", "??", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**",
}

// Keywords after which a slash starts a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

type lexer struct {
	src     string
	pos     int
	tokens  []token
	braces  []bool // true marks a template substitution
	newline bool
}

// lex splits TypeScript source into tokens, comments included. Unterminated
// strings end at the line break; unterminated comments and templates are
// reported as errors.
func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return l.tokens, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) next() error {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case isLineTerminator(r):
		l.newline = true
		l.pos += size
	case isWhitespace(r):
		l.pos += size
	case r == '/' && l.peek(1) == '/':
		l.lineComment()
	case r == '/' && l.peek(1) == '*':
		return l.blockComment()
	case r == '/' && l.regexAllowed():
		l.regexOrSlash()
	case r == '"' || r == '\'':
		l.quoted(byte(r))
	case r == '`':
		start := l.pos
		l.pos++
		return l.templateChunk(start)
	case isDigit(r) || (r == '.' && isDigit(rune(l.peek(1)))):
		l.number()
	case isIdentStart(r):
		l.ident()
	case r == '{':
		l.braces = append(l.braces, false)
		l.emit(tokPunct, l.pos, l.pos+1)
	case r == '}':
		if n := len(l.braces); n > 0 {
			substitution := l.braces[n-1]
			l.braces = l.braces[:n-1]
			if substitution {
				start := l.pos
				l.pos++
				return l.templateChunk(start)
			}
		}
		l.emit(tokPunct, l.pos, l.pos+1)
	default:
		l.punctuator(size)
	}
	return nil
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) emit(kind tokenKind, start, end int) {
	l.tokens = append(l.tokens, token{
		kind:          kind,
		start:         start,
		end:           end,
		text:          l.src[start:end],
		newlineBefore: l.newline,
	})
	l.newline = false
	l.pos = end
}

func (l *lexer) lineComment() {
	end := l.pos
	for end < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if isLineTerminator(r) {
			break
		}
		end += size
	}
	l.emit(tokComment, l.pos, end)
}

func (l *lexer) blockComment() error {
	start := l.pos
	idx := strings.Index(l.src[start+2:], "*/")
	if idx < 0 {
		l.emit(tokComment, start, len(l.src))
		return fmt.Errorf("block comment at offset %d: %w", start, ErrUnterminated)
	}
	end := start + 2 + idx + 2
	l.emit(tokComment, start, end)
	if strings.ContainsAny(l.src[start:end], "\r\n\u2028\u2029") {
		l.newline = true
	}
	return nil
}

func (l *lexer) regexAllowed() bool {
	prev, ok := l.lastSignificant()
	if !ok {
		return true
	}
	switch prev.kind {
	case tokPunct:
		return prev.text != ")" && prev.text != "]" && prev.text != "}"
	case tokIdent:
		return regexKeywords[prev.text]
	default:
		return false
	}
}

func (l *lexer) lastSignificant() (token, bool) {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if l.tokens[i].kind != tokComment {
			return l.tokens[i], true
		}
	}
	return token{}, false
}

// regexOrSlash scans a regular expression literal, falling back to a plain
// slash when the literal does not close on the same line.
func (l *lexer) regexOrSlash() {
	inClass := false
	for i := l.pos + 1; i < len(l.src); i++ {
		switch c := l.src[i]; {
		case c == '\n' || c == '\r':
			l.emit(tokPunct, l.pos, l.pos+1)
			return
		case c == '\\':
			i++
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			end := i + 1
			for end < len(l.src) && isIdentPartByte(l.src[end]) {
				end++
			}
			l.emit(tokRegex, l.pos, end)
			return
		}
	}
	l.emit(tokPunct, l.pos, l.pos+1)
}

func (l *lexer) quoted(quote byte) {
	i := l.pos + 1
	for i < len(l.src) {
		c := l.src[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == quote {
			i++
			break
		}
		if c == '\n' || c == '\r' {
			break
		}
		i++
	}
	l.emit(tokString, l.pos, min(i, len(l.src)))
}

// templateChunk scans from l.pos to the closing backtick or the next
// substitution opener; start is where the chunk's token begins.
func (l *lexer) templateChunk(start int) error {
	i := l.pos
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			l.emit(tokTemplate, start, i+1)
			return nil
		case '$':
			if i+1 < len(l.src) && l.src[i+1] == '{' {
				l.emit(tokTemplate, start, i+2)
				l.braces = append(l.braces, true)
				return nil
			}
		}
		i++
	}
	l.emit(tokTemplate, start, len(l.src))
	return fmt.Errorf("template literal at offset %d: %w", start, ErrUnterminated)
}

func (l *lexer) number() {
	i := l.pos
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case isIdentPartByte(c) || c == '.':
			i++
		case (c == '+' || c == '-') && i > l.pos && (l.src[i-1] == 'e' || l.src[i-1] == 'E') && !isHexLiteral(l.src[l.pos:i]):
			i++
		default:
			l.emit(tokNumber, l.pos, i)
			return
		}
	}
	l.emit(tokNumber, l.pos, i)
}

func isHexLiteral(s string) bool {
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func (l *lexer) ident() {
	i := l.pos
	for i < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[i:])
		if i > l.pos && !isIdentPart(r) {
			break
		}
		i += size
	}
	l.emit(tokIdent, l.pos, i)
}

func (l *lexer) punctuator(size int) {
	rest := l.src[l.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			if p == "?." && len(rest) > 2 && isDigit(rune(rest[2])) {
				break
			}
			l.emit(tokPunct, l.pos, l.pos+len(p))
			return
		}
	}
	l.emit(tokPunct, l.pos, l.pos+size)
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isWhitespace(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || r == '\u200c' || r == '\u200d'
}

func isIdentPartByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
