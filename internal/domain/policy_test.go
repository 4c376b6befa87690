package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) domain.RawOptions {
	t.Helper()
	var raw domain.RawOptions
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

var strictDefault = domain.SpacingRule{BeforeColon: 0, AfterColon: 1, Mode: domain.ModeStrict}

func TestNormalize_Defaults(t *testing.T) {
	p := domain.DefaultPolicy()
	assert.Equal(t, strictDefault, p.SingleLine)
	assert.Equal(t, strictDefault, p.MultiLine)
	assert.Nil(t, p.Align)
	assert.Equal(t, p, domain.Normalize(decode(t, "null")))
	assert.Equal(t, p, domain.Normalize(decode(t, "{}")))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		single domain.SpacingRule
		multi  domain.SpacingRule
		align  *domain.AlignRule
	}{
		{
			name:   "string shorthand",
			raw:    `"colon"`,
			single: strictDefault,
			multi:  strictDefault,
			align:  &domain.AlignRule{On: domain.AlignColon, Mode: domain.ModeStrict, BeforeColon: 0, AfterColon: 1},
		},
		{
			name:   "top-level align object uses rule defaults",
			raw:    `{"mode": "minimum", "afterColon": 3, "align": {"on": "value", "beforeColon": 2}}`,
			single: domain.SpacingRule{AfterColon: 3, Mode: domain.ModeMinimum},
			multi:  domain.SpacingRule{AfterColon: 3, Mode: domain.ModeMinimum},
			align:  &domain.AlignRule{On: domain.AlignValue, Mode: domain.ModeStrict, BeforeColon: 2, AfterColon: 1},
		},
		{
			name:   "align object without on defaults to colon",
			raw:    `{"align": {"mode": "minimum"}}`,
			single: strictDefault,
			multi:  strictDefault,
			align:  &domain.AlignRule{On: domain.AlignColon, Mode: domain.ModeMinimum, BeforeColon: 0, AfterColon: 1},
		},
		{
			name:   "align string inherits from the rule",
			raw:    `{"align": "value", "mode": "minimum", "beforeColon": 1, "afterColon": 2}`,
			single: domain.SpacingRule{BeforeColon: 1, AfterColon: 2, Mode: domain.ModeMinimum},
			multi:  domain.SpacingRule{BeforeColon: 1, AfterColon: 2, Mode: domain.ModeMinimum},
			align:  &domain.AlignRule{On: domain.AlignValue, Mode: domain.ModeMinimum, BeforeColon: 1, AfterColon: 2},
		},
		{
			name:   "multiLine align is hoisted",
			raw:    `{"multiLine": {"mode": "minimum", "afterColon": 2, "align": {"beforeColon": 1}}}`,
			single: strictDefault,
			multi:  domain.SpacingRule{AfterColon: 2, Mode: domain.ModeMinimum},
			align:  &domain.AlignRule{On: domain.AlignColon, Mode: domain.ModeMinimum, BeforeColon: 1, AfterColon: 2},
		},
		{
			name:   "multiLine string align",
			raw:    `{"multiLine": {"align": "value", "beforeColon": 1}}`,
			single: strictDefault,
			multi:  domain.SpacingRule{BeforeColon: 1, AfterColon: 1, Mode: domain.ModeStrict},
			align:  &domain.AlignRule{On: domain.AlignValue, Mode: domain.ModeStrict, BeforeColon: 1, AfterColon: 1},
		},
		{
			name:   "explicit multiLine drops a top-level string align",
			raw:    `{"align": "colon", "multiLine": {"afterColon": 2}}`,
			single: strictDefault,
			multi:  domain.SpacingRule{AfterColon: 2, Mode: domain.ModeStrict},
		},
		{
			name:   "singleLine and multiLine inherit the top level",
			raw:    `{"beforeColon": 1, "singleLine": {"afterColon": 0}}`,
			single: domain.SpacingRule{BeforeColon: 0, AfterColon: 0, Mode: domain.ModeStrict},
			multi:  domain.SpacingRule{BeforeColon: 1, AfterColon: 1, Mode: domain.ModeStrict},
		},
		{
			name:   "boolean widths",
			raw:    `{"beforeColon": true, "afterColon": false}`,
			single: domain.SpacingRule{BeforeColon: 1, AfterColon: 0, Mode: domain.ModeStrict},
			multi:  domain.SpacingRule{BeforeColon: 1, AfterColon: 0, Mode: domain.ModeStrict},
		},
		{
			name:   "unknown values pass through",
			raw:    `{"mode": "loose", "align": {"on": "middle"}}`,
			single: domain.SpacingRule{AfterColon: 1, Mode: "loose"},
			multi:  domain.SpacingRule{AfterColon: 1, Mode: "loose"},
			align:  &domain.AlignRule{On: "middle", Mode: domain.ModeStrict, AfterColon: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Normalize(decode(t, tt.raw))
			assert.Equal(t, tt.single, p.SingleLine)
			assert.Equal(t, tt.multi, p.MultiLine)
			assert.Equal(t, tt.align, p.Align)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`null`,
		`"colon"`,
		`"value"`,
		`{"align": {"on": "value", "mode": "minimum", "beforeColon": 2}}`,
		`{"align": "value", "mode": "minimum"}`,
		`{"multiLine": {"align": {"afterColon": 3}, "mode": "minimum"}}`,
		`{"singleLine": {"beforeColon": 1}, "multiLine": {"align": "colon"}}`,
		`{"mode": "loose", "afterColon": -1}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := domain.Normalize(decode(t, in))
			assert.Equal(t, p, domain.Normalize(p.Raw()))

			data, err := json.Marshal(p.Raw())
			require.NoError(t, err)
			assert.Equal(t, p, domain.Normalize(decode(t, string(data))))
		})
	}
}

func TestPolicy_RuleFor(t *testing.T) {
	p := domain.Normalize(decode(t, `{"singleLine": {"afterColon": 1}, "multiLine": {"afterColon": 4}}`))
	assert.Equal(t, 1, p.RuleFor(true).AfterColon)
	assert.Equal(t, 4, p.RuleFor(false).AfterColon)
}

func TestRawOptions_DecodeErrors(t *testing.T) {
	var raw domain.RawOptions
	assert.Error(t, json.Unmarshal([]byte(`{"beforeColon": "two"}`), &raw))
	assert.Error(t, json.Unmarshal([]byte(`{"align": 3}`), &raw))
}

func TestRawOptions_ShorthandRoundTrip(t *testing.T) {
	raw := decode(t, `"value"`)
	assert.Equal(t, "value", raw.Shorthand)
	assert.False(t, raw.IsZero())

	data, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `"value"`, string(data))

	assert.True(t, domain.RawOptions{}.IsZero())
}
