package spacing

import (
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/keyalign/internal/domain"
)

// Reporter turns report requests into diagnostics against one source.
type Reporter struct {
	src domain.Source
}

func NewReporter(src domain.Source) *Reporter {
	return &Reporter{src: src}
}

// Violates is the reporting predicate for an observed/expected pair.
// Whitespace spanning a line break is never corrected when spacing is expected.
func Violates(observed string, expected int, mode domain.Mode) bool {
	if expected > 0 && containsLineBreak(observed) {
		return false
	}
	diff := utf8.RuneCountInString(observed) - expected
	switch mode {
	case domain.ModeStrict:
		return diff != 0
	case domain.ModeMinimum:
		return diff < 0 || (diff > 0 && expected == 0)
	default:
		return false
	}
}

// Evaluate returns the diagnostic for req, or nil when the spacing conforms
// or the separator's neighbouring tokens cannot be located.
func (r *Reporter) Evaluate(req ReportRequest) *domain.Diagnostic {
	if !Violates(req.Observed, req.Expected, req.Mode) {
		return nil
	}
	dev, ok := domain.NewDeviation(req.Side, utf8.RuneCountInString(req.Observed), req.Expected)
	if !ok {
		return nil
	}
	bounds, ok := r.src.TokensAround(req.Construct.Separator)
	if !ok {
		return nil
	}

	anchor := bounds.After.Start
	if req.Side == domain.SideKey {
		anchor = bounds.Before.End
	}
	loc := domain.Span{Start: anchor, End: anchor}

	// a surplus larger than the observed whitespace has no removal to offer
	var edit *domain.Edit
	if dev.Sign == domain.SignMissing || dev.Magnitude <= utf8.RuneCountInString(req.Observed) {
		e := editFor(dev, req.Observed, bounds)
		edit = &e
		loc = domain.Span{Start: e.Start, End: e.End}
	}

	kind := dev.Kind()
	return &domain.Diagnostic{
		Kind:     kind,
		Side:     req.Side,
		Key:      req.Construct.KeyText,
		Computed: req.Construct.Computed,
		Message:  domain.FormatMessage(kind, req.Construct.KeyText, req.Construct.Computed),
		Location: loc,
		Start:    r.src.Position(loc.Start),
		End:      r.src.Position(loc.End),
		Edit:     edit,
	}
}

// editFor anchors key-side edits right after the token before the separator
// and value-side edits right before the token after it.
func editFor(dev domain.Deviation, observed string, bounds domain.TokenBounds) domain.Edit {
	if dev.Sign == domain.SignMissing {
		spaces := strings.Repeat(" ", dev.Magnitude)
		if dev.Side == domain.SideKey {
			return domain.InsertAt(bounds.Before.End, spaces)
		}
		return domain.InsertAt(bounds.After.Start, spaces)
	}

	if dev.Side == domain.SideKey {
		start := bounds.Before.End
		return domain.RemoveRange(start, start+leadingBytes(observed, dev.Magnitude))
	}
	end := bounds.After.Start
	return domain.RemoveRange(end-trailingBytes(observed, dev.Magnitude), end)
}

// leadingBytes is the byte length of the first n characters of s, capped at len(s).
func leadingBytes(s string, n int) int {
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// trailingBytes is the byte length of the last n characters of s, capped at len(s).
func trailingBytes(s string, n int) int {
	end := len(s)
	for i := 0; i < n && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return len(s) - end
}
