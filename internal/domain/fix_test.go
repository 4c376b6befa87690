package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collapse reports one edit per run of two spaces, replacing it with one.
func collapse(text string) ([]domain.Edit, error) {
	var edits []domain.Edit
	for i := 0; i+1 < len(text); i++ {
		if text[i] == ' ' && text[i+1] == ' ' {
			edits = append(edits, domain.RemoveRange(i, i+1))
			i++
		}
	}
	return edits, nil
}

func TestFixText_ReachesFixedPoint(t *testing.T) {
	fix, err := domain.FixText("a      b", 0, collapse)
	require.NoError(t, err)

	assert.Equal(t, "a b", fix.Text)
	assert.True(t, fix.Changed())
	assert.Equal(t, 5, fix.Applied)
	assert.Equal(t, 3, fix.Passes)
	assert.Zero(t, fix.Remaining)
}

func TestFixText_NothingToDo(t *testing.T) {
	fix, err := domain.FixText("a b", 0, collapse)
	require.NoError(t, err)

	assert.Equal(t, "a b", fix.Text)
	assert.False(t, fix.Changed())
	assert.Zero(t, fix.Passes)
}

func TestFixText_PassLimit(t *testing.T) {
	fix, err := domain.FixText("a"+strings.Repeat(" ", 17)+"b", 2, collapse)
	require.NoError(t, err)

	assert.Equal(t, 2, fix.Passes)
	assert.Positive(t, fix.Remaining)
}

func TestFixText_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := domain.FixText("x", 0, func(string) ([]domain.Edit, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestFixOptions_Passes(t *testing.T) {
	assert.Equal(t, domain.MaxFixPasses, domain.FixOptions{}.Passes())
	assert.Equal(t, 3, domain.FixOptions{MaxPasses: 3}.Passes())
}

func TestFixResult_Counts(t *testing.T) {
	r := domain.FixResult{Files: []domain.FileFix{
		{Path: "a.ts", Applied: 3, Passes: 1},
		{Path: "b.ts"},
		{Path: "c.ts", Applied: 1, Passes: 10, Remaining: 2},
	}}
	assert.Equal(t, 4, r.AppliedCount())
	assert.Equal(t, 2, r.ChangedCount())
	assert.Equal(t, 2, r.RemainingCount())
}

func TestFixText_StopsWithoutProgress(t *testing.T) {
	stuck := func(string) ([]domain.Edit, error) {
		return []domain.Edit{domain.RemoveRange(1, 1)}, nil
	}
	fix, err := domain.FixText("a b", 0, stuck)
	require.NoError(t, err)

	assert.Equal(t, "a b", fix.Text)
	assert.False(t, fix.Changed())
	assert.Zero(t, fix.Passes)
	assert.Equal(t, 1, fix.Remaining)
}
