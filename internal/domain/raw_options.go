package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawOptions is the user-facing option value before normalization. It is
// either a bare string naming an alignment target or an object; the zero
// value means no options were given.
type RawOptions struct {
	Shorthand string
	RawRule
	SingleLine *RawRule
	MultiLine  *RawRule
}

// RawRule holds the optional fields shared by the top level, singleLine and
// multiLine objects.
type RawRule struct {
	Align       *RawAlign `json:"align,omitempty"`
	Mode        *string   `json:"mode,omitempty"`
	BeforeColon *Width    `json:"beforeColon,omitempty"`
	AfterColon  *Width    `json:"afterColon,omitempty"`
}

// RawAlign is the string-or-object form of the align option.
type RawAlign struct {
	On     string
	Object *RawAlignObject
}

type RawAlignObject struct {
	On          *string `json:"on,omitempty"`
	Mode        *string `json:"mode,omitempty"`
	BeforeColon *Width  `json:"beforeColon,omitempty"`
	AfterColon  *Width  `json:"afterColon,omitempty"`
}

// Width is a spacing count. Booleans decode as 0 or 1.
type Width int

// topRule returns the top-level rule with the shorthand expanded into align.
func (o RawOptions) topRule() RawRule {
	r := o.RawRule
	if r.Align == nil && o.Shorthand != "" {
		r.Align = &RawAlign{On: o.Shorthand}
	}
	return r
}

// IsZero reports whether no option was given at all.
func (o RawOptions) IsZero() bool {
	return o.Shorthand == "" && o.SingleLine == nil && o.MultiLine == nil &&
		o.Align == nil && o.Mode == nil && o.BeforeColon == nil && o.AfterColon == nil
}

type rawOptionsObject struct {
	RawRule
	SingleLine *RawRule `json:"singleLine,omitempty"`
	MultiLine  *RawRule `json:"multiLine,omitempty"`
}

func (o *RawOptions) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*o = RawOptions{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = RawOptions{Shorthand: s}
		return nil
	}

	var obj rawOptionsObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	*o = RawOptions{RawRule: obj.RawRule, SingleLine: obj.SingleLine, MultiLine: obj.MultiLine}
	return nil
}

func (o RawOptions) MarshalJSON() ([]byte, error) {
	if o.Shorthand != "" && o.Align == nil && o.Mode == nil &&
		o.BeforeColon == nil && o.AfterColon == nil && o.SingleLine == nil && o.MultiLine == nil {
		return json.Marshal(o.Shorthand)
	}
	return json.Marshal(rawOptionsObject{RawRule: o.topRule(), SingleLine: o.SingleLine, MultiLine: o.MultiLine})
}

func (a *RawAlign) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAlign{On: s}
		return nil
	}
	var obj RawAlignObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding align: %w", err)
	}
	*a = RawAlign{Object: &obj}
	return nil
}

func (a RawAlign) MarshalJSON() ([]byte, error) {
	if a.Object != nil {
		return json.Marshal(a.Object)
	}
	return json.Marshal(a.On)
}

func (w *Width) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*w = 1
		} else {
			*w = 0
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("width must be an integer or boolean, got %s", data)
	}
	*w = Width(n)
	return nil
}
