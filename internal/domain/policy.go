package domain

// Mode controls how strictly a spacing width is enforced.
type Mode string

const (
	// ModeStrict reports any deviation from the expected width.
	ModeStrict Mode = "strict"
	// ModeMinimum reports only insufficient width, except where zero is expected.
	ModeMinimum Mode = "minimum"
)

// AlignOn names the column a group is aligned on.
type AlignOn string

const (
	AlignColon AlignOn = "colon"
	AlignValue AlignOn = "value"
)

const (
	defaultBeforeColon = 0
	defaultAfterColon  = 1
)

// SpacingRule is the expected whitespace around a separator for one line shape.
type SpacingRule struct {
	BeforeColon int  `json:"beforeColon" yaml:"beforeColon"`
	AfterColon  int  `json:"afterColon"  yaml:"afterColon"`
	Mode        Mode `json:"mode"        yaml:"mode"`
}

// AlignRule is the group-level policy used when constructs are aligned.
type AlignRule struct {
	On          AlignOn `json:"on"          yaml:"on"`
	Mode        Mode    `json:"mode"        yaml:"mode"`
	BeforeColon int     `json:"beforeColon" yaml:"beforeColon"`
	AfterColon  int     `json:"afterColon"  yaml:"afterColon"`
}

// Policy is the fully normalized spacing configuration.
// Build it with Normalize; it is never mutated afterwards.
type Policy struct {
	SingleLine SpacingRule `json:"singleLine"      yaml:"singleLine"`
	MultiLine  SpacingRule `json:"multiLine"       yaml:"multiLine"`
	Align      *AlignRule  `json:"align,omitempty" yaml:"align,omitempty"`
}

// DefaultPolicy is the policy produced by an absent configuration.
func DefaultPolicy() Policy {
	return Normalize(RawOptions{})
}

// RuleFor returns the rule applying to a construct of the given line shape.
func (p Policy) RuleFor(singleLine bool) SpacingRule {
	if singleLine {
		return p.SingleLine
	}
	return p.MultiLine
}

// Raw converts the policy back into the explicit option shape.
// Normalize(p.Raw()) == p for every normalized policy.
func (p Policy) Raw() RawOptions {
	single := p.SingleLine.raw()
	multi := p.MultiLine.raw()
	raw := RawOptions{SingleLine: &single, MultiLine: &multi}
	if p.Align != nil {
		raw.Align = &RawAlign{Object: p.Align.raw()}
	}
	return raw
}

func (r SpacingRule) raw() RawRule {
	mode := string(r.Mode)
	before, after := Width(r.BeforeColon), Width(r.AfterColon)
	return RawRule{Mode: &mode, BeforeColon: &before, AfterColon: &after}
}

func (a AlignRule) raw() *RawAlignObject {
	on, mode := string(a.On), string(a.Mode)
	before, after := Width(a.BeforeColon), Width(a.AfterColon)
	return &RawAlignObject{On: &on, Mode: &mode, BeforeColon: &before, AfterColon: &after}
}

// Normalize resolves raw, possibly shorthand options into a complete Policy.
//
// Unset rule fields default to strict mode, zero spaces before and one space
// after the separator. singleLine and multiLine fall back to the top-level
// object when they are not given. A top-level align object becomes the group
// policy; otherwise an align carried by the multiLine rule is hoisted.
func Normalize(raw RawOptions) Policy {
	top := raw.topRule()

	single := top
	if raw.SingleLine != nil {
		single = *raw.SingleLine
	}
	multi := top
	if raw.MultiLine != nil {
		multi = *raw.MultiLine
	}

	p := Policy{
		SingleLine: normalizeRule(single),
		MultiLine:  normalizeRule(multi),
	}

	if top.Align != nil && top.Align.Object != nil {
		a := normalizeAlignObject(*top.Align.Object, ruleDefaults())
		p.Align = &a
		return p
	}

	if multi.Align != nil {
		a := expandAlign(*multi.Align, p.MultiLine)
		p.Align = &a
	}
	return p
}

func ruleDefaults() SpacingRule {
	return SpacingRule{
		BeforeColon: defaultBeforeColon,
		AfterColon:  defaultAfterColon,
		Mode:        ModeStrict,
	}
}

func normalizeRule(r RawRule) SpacingRule {
	out := ruleDefaults()
	if r.Mode != nil && *r.Mode != "" {
		out.Mode = Mode(*r.Mode)
	}
	if r.BeforeColon != nil {
		out.BeforeColon = int(*r.BeforeColon)
	}
	if r.AfterColon != nil {
		out.AfterColon = int(*r.AfterColon)
	}
	return out
}

// expandAlign turns a string or object align into a rule, inheriting unset
// fields from the rule it was attached to.
func expandAlign(a RawAlign, inherit SpacingRule) AlignRule {
	if a.Object != nil {
		return normalizeAlignObject(*a.Object, inherit)
	}
	on := AlignOn(a.On)
	if on == "" {
		on = AlignColon
	}
	return AlignRule{
		On:          on,
		Mode:        inherit.Mode,
		BeforeColon: inherit.BeforeColon,
		AfterColon:  inherit.AfterColon,
	}
}

func normalizeAlignObject(o RawAlignObject, inherit SpacingRule) AlignRule {
	out := AlignRule{
		On:          AlignColon,
		Mode:        inherit.Mode,
		BeforeColon: inherit.BeforeColon,
		AfterColon:  inherit.AfterColon,
	}
	if o.On != nil && *o.On != "" {
		out.On = AlignOn(*o.On)
	}
	if o.Mode != nil && *o.Mode != "" {
		out.Mode = Mode(*o.Mode)
	}
	if o.BeforeColon != nil {
		out.BeforeColon = int(*o.BeforeColon)
	}
	if o.AfterColon != nil {
		out.AfterColon = int(*o.AfterColon)
	}
	return out
}
