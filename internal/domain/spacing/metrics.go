package spacing

import (
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/keyalign/internal/domain"
)

// isJSWhitespace reports whether r belongs to the JavaScript \s class.
func isJSWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// MeasureKeyWidth returns the character width of the construct's key, from
// its first token to the last token before the separator.
func MeasureKeyWidth(src domain.Source, c domain.Construct) int {
	return utf8.RuneCountInString(src.SliceText(c.KeyStart, c.KeyEnd))
}

// ExtractWhitespace returns the whitespace immediately around the separator,
// or nil when the construct has no separator. Comments between the key and
// the separator are not part of the observed whitespace.
func ExtractWhitespace(src domain.Source, c domain.Construct) *domain.WhitespaceSpan {
	if !c.HasSeparator() {
		return nil
	}
	sep := c.SeparatorText
	if sep == "" {
		sep = ":"
	}
	afterSep := c.Separator + len(sep)
	if c.Separator < c.KeyEnd || afterSep > c.ValueStart {
		return nil
	}
	if src.SliceText(c.Separator, afterSep) != sep {
		return nil
	}
	before := src.SliceText(c.KeyEnd, c.Separator)
	after := src.SliceText(afterSep, c.ValueStart)
	return &domain.WhitespaceSpan{
		BeforeColon: before[len(strings.TrimRightFunc(before, isJSWhitespace)):],
		AfterColon:  after[:len(after)-len(strings.TrimLeftFunc(after, isJSWhitespace))],
	}
}

// IsSingleLine reports whether the construct's key and value share a line.
func IsSingleLine(src domain.Source, c domain.Construct) bool {
	end := c.ValueEnd
	if end < c.KeyStart {
		end = c.KeyEnd
	}
	return src.Position(c.KeyStart).Line == src.Position(end).Line
}

func containsLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n\u2028\u2029")
}
