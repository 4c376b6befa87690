package domain

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
)

// Side is the side of the separator a whitespace span sits on.
type Side string

const (
	SideKey   Side = "key"
	SideValue Side = "value"
)

// Sign classifies a deviation.
type Sign string

const (
	SignExtra   Sign = "extra"
	SignMissing Sign = "missing"
)

// MessageKind is the stable identifier of a diagnostic.
type MessageKind string

const (
	MissingKey   MessageKind = "missingKey"
	MissingValue MessageKind = "missingValue"
	ExtraKey     MessageKind = "extraKey"
	ExtraValue   MessageKind = "extraValue"
)

var messageTemplates = map[MessageKind]string{
	ExtraKey:     "Extra space after %skey '%s'.",
	ExtraValue:   "Extra space before value for %skey '%s'.",
	MissingKey:   "Missing space after %skey '%s'.",
	MissingValue: "Missing space before value for %skey '%s'.",
}

// MessageKindFor maps a side and sign to its message kind.
func MessageKindFor(side Side, sign Sign) MessageKind {
	if sign == SignExtra {
		if side == SideKey {
			return ExtraKey
		}
		return ExtraValue
	}
	if side == SideKey {
		return MissingKey
	}
	return MissingValue
}

// Label renders the kind as lower-case words, e.g. "missing key".
func (k MessageKind) Label() string {
	words := camelcase.Split(string(k))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// FormatMessage renders the user-facing text of a diagnostic.
func FormatMessage(kind MessageKind, key string, computed bool) string {
	tmpl, ok := messageTemplates[kind]
	if !ok {
		return fmt.Sprintf("%s for key '%s'.", kind, key)
	}
	prefix := ""
	if computed {
		prefix = "computed "
	}
	return fmt.Sprintf(tmpl, prefix, key)
}

// Deviation is the difference between observed and expected whitespace.
type Deviation struct {
	Side      Side `json:"side"`
	Sign      Sign `json:"sign"`
	Magnitude int  `json:"magnitude"`
}

// NewDeviation computes observed - expected. ok is false when they match.
func NewDeviation(side Side, observed, expected int) (Deviation, bool) {
	diff := observed - expected
	if diff == 0 {
		return Deviation{}, false
	}
	d := Deviation{Side: side, Sign: SignExtra, Magnitude: diff}
	if diff < 0 {
		d.Sign = SignMissing
		d.Magnitude = -diff
	}
	return d, true
}

func (d Deviation) Kind() MessageKind { return MessageKindFor(d.Side, d.Sign) }

// Diagnostic is one spacing violation with its fix.
type Diagnostic struct {
	Kind     MessageKind `json:"message_kind"`
	Side     Side        `json:"side"`
	Key      string      `json:"key"`
	Computed bool        `json:"computed,omitempty"`
	Message  string      `json:"message"`
	Location Span        `json:"location"`
	Start    Position    `json:"start"`
	End      Position    `json:"end"`
	Edit     *Edit       `json:"edit,omitempty"`
}

// Fixable reports whether the diagnostic carries an edit.
func (d Diagnostic) Fixable() bool { return d.Edit != nil }
