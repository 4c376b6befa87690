package spacing_test

import (
	"testing"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/abdidvp/keyalign/internal/domain/spacing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFor(t *testing.T, src string, policy domain.Policy) []spacing.ReportRequest {
	t.Helper()
	file := parseTS(t, src)
	require.Len(t, file.Bodies, 1)
	return spacing.PlanGroup(file.Source, file.Bodies[0].Constructs, policy)
}

func expectations(reqs []spacing.ReportRequest) map[string][2]int {
	out := map[string][2]int{}
	for _, r := range reqs {
		e := out[r.Construct.KeyText]
		if r.Side == domain.SideKey {
			e[0] = r.Expected
		} else {
			e[1] = r.Expected
		}
		out[r.Construct.KeyText] = e
	}
	return out
}

func TestPlanGroup_ColonAlignment(t *testing.T) {
	reqs := planFor(t, "interface A {\n  a: string\n  bbbb: number\n}", alignOn("colon"))
	require.Len(t, reqs, 4)
	assert.Equal(t, map[string][2]int{
		"a":    {3, 1},
		"bbbb": {0, 1},
	}, expectations(reqs))
}

func TestPlanGroup_ValueAlignment(t *testing.T) {
	reqs := planFor(t, "interface A {\n  a: string\n  bbbb: number\n}", alignOn("value"))
	assert.Equal(t, map[string][2]int{
		"a":    {0, 4},
		"bbbb": {0, 1},
	}, expectations(reqs))
}

func TestPlanGroup_UnknownAlignTargetUsesColonPath(t *testing.T) {
	policy := domain.Policy{
		SingleLine: domain.SpacingRule{AfterColon: 1, Mode: domain.ModeStrict},
		MultiLine:  domain.SpacingRule{AfterColon: 1, Mode: domain.ModeStrict},
		Align:      &domain.AlignRule{On: "middle", Mode: domain.ModeStrict, AfterColon: 1},
	}
	reqs := planFor(t, "interface A {\n  a: string\n  bbb: number\n}", policy)
	// target is widest key plus afterColon, applied to the key side
	assert.Equal(t, map[string][2]int{
		"a":   {3, 1},
		"bbb": {1, 1},
	}, expectations(reqs))
}

func TestPlanGroup_MembersWithoutSeparatorDoNotWiden(t *testing.T) {
	reqs := planFor(t, "interface A {\n  a: string\n  veryLongMethodName()\n  bb: number\n}", alignOn("colon"))
	require.Len(t, reqs, 4)
	assert.Equal(t, map[string][2]int{
		"a":  {1, 1},
		"bb": {0, 1},
	}, expectations(reqs))
}

func TestPlanGroup_SingleMemberIsCheckedIndependently(t *testing.T) {
	policy := domain.Normalize(domain.RawOptions{
		RawRule: domain.RawRule{
			Align: &domain.RawAlign{Object: &domain.RawAlignObject{On: str("colon"), BeforeColon: width(3)}},
		},
	})
	reqs := planFor(t, "interface A {\n  a: string\n}", policy)
	assert.Equal(t, map[string][2]int{"a": {0, 1}}, expectations(reqs))
}

func TestPlanGroup_LineShapeSelectsRule(t *testing.T) {
	policy := domain.Normalize(domain.RawOptions{
		SingleLine: &domain.RawRule{AfterColon: width(1)},
		MultiLine:  &domain.RawRule{AfterColon: width(2)},
	})
	src := "interface A {\n  a: string\n  b: (\n    x: number\n  ) => void\n}"
	reqs := planFor(t, src, policy)
	assert.Equal(t, map[string][2]int{
		"a": {0, 1},
		"b": {0, 2},
	}, expectations(reqs))
}

func TestPlanGroup_EmptyGroup(t *testing.T) {
	assert.Empty(t, planFor(t, "interface A {}", alignOn("colon")))
	assert.Empty(t, planFor(t, "interface A { m(); n }", alignOn("colon")))
}

func TestMeasureKeyWidth_CountsCharacters(t *testing.T) {
	file := parseTS(t, "interface A {\n  'héllo': string\n}")
	c := file.Bodies[0].Constructs[0]
	assert.Equal(t, 7, spacing.MeasureKeyWidth(file.Source, c))
}

func TestExtractWhitespace(t *testing.T) {
	file := parseTS(t, "interface A {\n  a \t:  string\n  b\n}")
	cs := file.Bodies[0].Constructs

	ws := spacing.ExtractWhitespace(file.Source, cs[0])
	require.NotNil(t, ws)
	assert.Equal(t, " \t", ws.BeforeColon)
	assert.Equal(t, "  ", ws.AfterColon)

	assert.Nil(t, spacing.ExtractWhitespace(file.Source, cs[1]))
}

func TestExtractWhitespace_IgnoresSeparatorsInComments(t *testing.T) {
	file := parseTS(t, "interface A {\n  foo /* a: b */  :/* c: */ string\n}\nenum E {\n  Red /* = */\t= 1\n}")
	require.Len(t, file.Bodies, 2)

	ws := spacing.ExtractWhitespace(file.Source, file.Bodies[0].Constructs[0])
	require.NotNil(t, ws)
	assert.Equal(t, "  ", ws.BeforeColon)
	assert.Equal(t, "", ws.AfterColon)

	ws = spacing.ExtractWhitespace(file.Source, file.Bodies[1].Constructs[0])
	require.NotNil(t, ws)
	assert.Equal(t, "\t", ws.BeforeColon)
	assert.Equal(t, " ", ws.AfterColon)
}

func TestCommentBeforeSeparatorFixesOnce(t *testing.T) {
	policy := domain.Normalize(domain.RawOptions{RawRule: domain.RawRule{BeforeColon: width(1)}})
	assert.Empty(t, check(t, "interface A {\n  foo /* a: b */ : string\n}", policy))

	fixed := fixAll(t, "interface A {\n  foo /* a: b */: string\n}", policy)
	assert.Equal(t, "interface A {\n  foo /* a: b */ : string\n}", fixed)

	fixed = fixAll(t, "enum E {\n  Red /* = */ = 1\n}", domain.DefaultPolicy())
	assert.Equal(t, "enum E {\n  Red /* = */= 1\n}", fixed)
}
