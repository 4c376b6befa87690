package domain

// ConstructKind identifies the member form a Construct was built from.
type ConstructKind string

const (
	KindProperty           ConstructKind = "property"
	KindMethod             ConstructKind = "method"
	KindCallSignature      ConstructKind = "call_signature"
	KindConstructSignature ConstructKind = "construct_signature"
	KindIndexSignature     ConstructKind = "index_signature"
	KindEnumMember         ConstructKind = "enum_member"
)

// NoOffset marks an absent separator or value.
const NoOffset = -1

// Construct is one key/value member of a declaration body. Offsets are byte
// offsets into the backing Source.
type Construct struct {
	Kind ConstructKind `json:"kind"`

	// KeyStart is the start of the member's first token, KeyEnd the end of
	// the last non-comment token before the separator.
	KeyStart int `json:"key_start"`
	KeyEnd   int `json:"key_end"`

	Separator     int    `json:"separator"`
	SeparatorText string `json:"separator_text,omitempty"`

	ValueStart int `json:"value_start"`
	ValueEnd   int `json:"value_end"`

	Computed bool   `json:"computed,omitempty"`
	KeyText  string `json:"key"`
}

// HasSeparator reports whether the member has a separator and a value after it.
func (c Construct) HasSeparator() bool {
	return c.Separator >= 0 && c.ValueStart >= 0
}

// WhitespaceSpan is the literal whitespace on either side of a separator.
type WhitespaceSpan struct {
	BeforeColon string `json:"before_colon"`
	AfterColon  string `json:"after_colon"`
}

// BodyKind distinguishes the two entry points of the checker.
type BodyKind string

const (
	BodyInterface BodyKind = "interface"
	BodyEnum      BodyKind = "enum"
)

// DeclarationBody is one brace-delimited member list in source order.
type DeclarationBody struct {
	Kind       BodyKind    `json:"kind"`
	Name       string      `json:"name"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
	Constructs []Construct `json:"constructs"`
}

// ParsedFile is everything the checker needs from one source file.
type ParsedFile struct {
	Path   string
	Source Source
	Bodies []DeclarationBody
}
