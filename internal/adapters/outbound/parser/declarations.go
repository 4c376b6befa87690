package parser

import (
	"github.com/abdidvp/keyalign/internal/domain"
)

// Tokens that leave a type unfinished when they end a line.
var continuesAfter = map[string]bool{
	":": true, "|": true, "&": true, "=>": true, ".": true, "?": true,
	"extends": true, "keyof": true, "typeof": true, "infer": true, "is": true,
	"asserts": true, "unique": true, "new": true, "readonly": true,
	"get": true, "set": true,
}

// Tokens that continue the previous line's type when they start a line.
var continuesBefore = map[string]bool{
	"|": true, "&": true, "=>": true, ".": true, "?": true, ":": true,
	"extends": true, "is": true, "as": true, ">": true,
}

// declarations walks the significant tokens of a file and collects its
// interface and enum bodies in source order.
type declarations struct {
	file *File
	toks []token // comments removed
}

func findBodies(f *File) []domain.DeclarationBody {
	d := &declarations{file: f}
	for _, t := range f.tokens {
		if t.kind != tokComment {
			d.toks = append(d.toks, t)
		}
	}

	var bodies []domain.DeclarationBody
	for i := 0; i < len(d.toks); i++ {
		t := d.toks[i]
		if t.kind != tokIdent || (t.text != "interface" && t.text != "enum") {
			continue
		}
		if i > 0 && (d.toks[i-1].is(".") || d.toks[i-1].is("?.")) {
			continue
		}
		if i+1 >= len(d.toks) || d.toks[i+1].kind != tokIdent {
			continue
		}
		var (
			body domain.DeclarationBody
			ok   bool
		)
		if t.text == "interface" {
			body, ok = d.interfaceBody(i)
		} else {
			body, ok = d.enumBody(i)
		}
		if ok {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// interfaceBody parses `interface Name<T> extends A, B { ... }` starting at
// the keyword index.
func (d *declarations) interfaceBody(kw int) (domain.DeclarationBody, bool) {
	open := -1
	angle := 0
	for j := kw + 2; j < len(d.toks); j++ {
		t := d.toks[j]
		switch {
		case t.is("<"):
			angle++
		case t.is(">"):
			angle--
		case t.is("{") && angle <= 0:
			open = j
		case angle <= 0 && (t.is(";") || t.is("}") || t.is("=")):
			return domain.DeclarationBody{}, false
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return domain.DeclarationBody{}, false
	}
	closing := d.matchBrace(open)
	if closing < 0 {
		return domain.DeclarationBody{}, false
	}

	body := domain.DeclarationBody{
		Kind:  domain.BodyInterface,
		Name:  d.toks[kw+1].text,
		Start: d.toks[open].start,
		End:   d.toks[closing].end,
	}
	for _, m := range d.splitMembers(open+1, closing, true) {
		if c, ok := d.interfaceConstruct(m); ok {
			body.Constructs = append(body.Constructs, c)
		}
	}
	return body, true
}

// enumBody parses `enum Name { ... }`; `const` and `declare` prefixes are
// ordinary tokens before the keyword.
func (d *declarations) enumBody(kw int) (domain.DeclarationBody, bool) {
	open := kw + 2
	if open >= len(d.toks) || !d.toks[open].is("{") {
		return domain.DeclarationBody{}, false
	}
	closing := d.matchBrace(open)
	if closing < 0 {
		return domain.DeclarationBody{}, false
	}

	body := domain.DeclarationBody{
		Kind:  domain.BodyEnum,
		Name:  d.toks[kw+1].text,
		Start: d.toks[open].start,
		End:   d.toks[closing].end,
	}
	for _, m := range d.splitMembers(open+1, closing, false) {
		if c, ok := d.enumConstruct(m); ok {
			body.Constructs = append(body.Constructs, c)
		}
	}
	return body, true
}

func (d *declarations) matchBrace(open int) int {
	depth := 0
	for j := open; j < len(d.toks); j++ {
		switch {
		case d.toks[j].is("{"):
			depth++
		case d.toks[j].is("}"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// member is a half-open range of significant token indices.
type member struct{ from, to int }

// splitMembers splits [from, to) on top-level `;` and `,`. Type members may
// also end at a line break when the type before it is complete.
func (d *declarations) splitMembers(from, to int, typeMembers bool) []member {
	var members []member
	start, depth := from, 0
	flush := func(end int) {
		if end > start {
			members = append(members, member{start, end})
		}
	}
	for j := from; j < to; j++ {
		t := d.toks[j]
		if depth == 0 && j > start && typeMembers && t.newlineBefore &&
			!continuesAfter[d.toks[j-1].text] && !continuesBefore[t.text] {
			flush(j)
			start = j
		}
		switch {
		case t.is("(") || t.is("[") || t.is("{") || (typeMembers && t.is("<")):
			depth++
		case t.is(")") || t.is("]") || t.is("}") || (typeMembers && t.is(">")):
			if depth > 0 {
				depth--
			}
		case depth == 0 && (t.is(";") || t.is(",")):
			flush(j)
			start = j + 1
		}
	}
	flush(to)
	return members
}

// separatorIn returns the index of the first top-level token with the given
// text inside m, or -1.
func (d *declarations) separatorIn(m member, sep string, angles bool) int {
	depth := 0
	for j := m.from; j < m.to; j++ {
		t := d.toks[j]
		switch {
		case t.is("(") || t.is("[") || t.is("{") || (angles && t.is("<")):
			depth++
		case t.is(")") || t.is("]") || t.is("}") || (angles && t.is(">")):
			depth--
		case depth == 0 && t.is(sep):
			return j
		}
	}
	return -1
}

var modifiers = map[string]bool{"readonly": true, "get": true, "set": true}

// interfaceConstruct classifies one type member and locates its key,
// separator and value.
func (d *declarations) interfaceConstruct(m member) (domain.Construct, bool) {
	keyAt := m.from
	for keyAt+1 < m.to && d.toks[keyAt].kind == tokIdent && modifiers[d.toks[keyAt].text] && startsKey(d.toks[keyAt+1]) {
		keyAt++
	}

	first := d.toks[keyAt]
	c := domain.Construct{KeyStart: d.toks[m.from].start}
	keyLast := keyAt
	switch {
	case first.is("(") || first.is("<"):
		c.Kind = domain.KindCallSignature
	case first.is("new") && keyAt+1 < m.to && (d.toks[keyAt+1].is("(") || d.toks[keyAt+1].is("<")):
		c.Kind = domain.KindConstructSignature
	case first.is("["):
		closing := d.closingBracket(keyAt, m.to)
		if closing < 0 {
			return domain.Construct{}, false
		}
		keyLast = closing
		if d.isIndexSignature(keyAt, closing) {
			c.Kind = domain.KindIndexSignature
		} else {
			c.Computed = true
			c.Kind = d.propertyOrMethod(closing+1, m.to)
		}
	case first.kind == tokIdent || first.kind == tokString || first.kind == tokNumber:
		c.Kind = d.propertyOrMethod(keyAt+1, m.to)
	default:
		return domain.Construct{}, false
	}

	switch c.Kind {
	case domain.KindProperty:
		c.KeyText = d.file.SliceText(first.start, d.toks[keyLast].end)
	default:
		c.KeyText = d.file.SliceText(d.toks[m.from].start, d.toks[keyLast].end)
	}

	d.attachValue(&c, m, ":", true)
	if c.Kind != domain.KindProperty && c.Separator >= 0 {
		c.KeyText = d.file.SliceText(c.KeyStart, c.KeyEnd)
	}
	return c, true
}

// propertyOrMethod looks past an optional `?` or `!` after the key.
func (d *declarations) propertyOrMethod(after, to int) domain.ConstructKind {
	if after < to && (d.toks[after].is("?") || d.toks[after].is("!")) {
		after++
	}
	if after < to && (d.toks[after].is("(") || d.toks[after].is("<")) {
		return domain.KindMethod
	}
	return domain.KindProperty
}

func (d *declarations) closingBracket(open, to int) int {
	depth := 0
	for j := open; j < to; j++ {
		switch {
		case d.toks[j].is("[") || d.toks[j].is("(") || d.toks[j].is("{"):
			depth++
		case d.toks[j].is("]") || d.toks[j].is(")") || d.toks[j].is("}"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// isIndexSignature matches `[name: Type]` and `[name?: Type]`.
func (d *declarations) isIndexSignature(open, closing int) bool {
	j := open + 1
	if j >= closing || d.toks[j].kind != tokIdent {
		return false
	}
	j++
	if j < closing && d.toks[j].is("?") {
		j++
	}
	return j < closing && d.toks[j].is(":")
}

func startsKey(t token) bool {
	switch t.kind {
	case tokIdent, tokString, tokNumber:
		return true
	}
	return t.is("[")
}

func (d *declarations) enumConstruct(m member) (domain.Construct, bool) {
	first := d.toks[m.from]
	c := domain.Construct{Kind: domain.KindEnumMember, KeyStart: first.start}
	keyLast := m.from
	switch {
	case first.is("["):
		closing := d.closingBracket(m.from, m.to)
		if closing < 0 {
			return domain.Construct{}, false
		}
		keyLast = closing
		c.Computed = true
	case first.kind == tokIdent || first.kind == tokString || first.kind == tokNumber:
	default:
		return domain.Construct{}, false
	}
	c.KeyText = d.file.SliceText(first.start, d.toks[keyLast].end)
	d.attachValue(&c, m, "=", false)
	return c, true
}

// attachValue fills the separator and value offsets of c. Without a
// separator the key runs to the member's last token.
func (d *declarations) attachValue(c *domain.Construct, m member, sep string, angles bool) {
	c.Separator, c.ValueStart, c.ValueEnd = domain.NoOffset, domain.NoOffset, domain.NoOffset
	at := d.separatorIn(m, sep, angles)
	if at < 0 {
		c.KeyEnd = d.toks[m.to-1].end
		return
	}
	if at == m.from {
		c.KeyEnd = c.KeyStart
	} else {
		c.KeyEnd = d.toks[at-1].end
	}
	c.Separator = d.toks[at].start
	c.SeparatorText = sep
	if at+1 < m.to {
		c.ValueStart = d.toks[at+1].start
		c.ValueEnd = d.toks[m.to-1].end
	}
}
