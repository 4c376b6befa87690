package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.text
	}
	return out
}

func TestLex_Punctuators(t *testing.T) {
	tokens, err := lex("a?.b ?? c => ...d?:e")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "?.", "b", "??", "c", "=>", "...", "d", "?", ":", "e"}, texts(tokens))
}

func TestLex_AngleBracketsStaySingle(t *testing.T) {
	tokens, err := lex("Array<Array<string>>")
	require.NoError(t, err)
	assert.Equal(t, []string{"Array", "<", "Array", "<", "string", ">", ">"}, texts(tokens))
}

func TestLex_NewlineBefore(t *testing.T) {
	tokens, err := lex("a /* x\n */ b\nc")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.False(t, tokens[1].newlineBefore)
	assert.True(t, tokens[2].newlineBefore, "multi-line comment counts as a line break")
	assert.True(t, tokens[3].newlineBefore)
}

func TestLex_Kinds(t *testing.T) {
	tokens, err := lex("x = /re[/]x/gi; y = 1.5e-3; z = 'q\\'s'; w = `t${x}u`")
	require.NoError(t, err)

	kinds := map[string]tokenKind{}
	for _, tok := range tokens {
		kinds[tok.text] = tok.kind
	}
	assert.Equal(t, tokRegex, kinds["/re[/]x/gi"])
	assert.Equal(t, tokNumber, kinds["1.5e-3"])
	assert.Equal(t, tokString, kinds[`'q\'s'`])
	assert.Equal(t, tokTemplate, kinds["`t${"])
	assert.Equal(t, tokTemplate, kinds["}u`"])
}

func TestLex_UnicodeLineTerminators(t *testing.T) {
	tokens, err := lex("a\u2028b")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.True(t, tokens[1].newlineBefore)
}
