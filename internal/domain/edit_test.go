package domain_test

import (
	"testing"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdits(t *testing.T) {
	text := "a  :b"
	out, applied, err := domain.ApplyEdits(text, []domain.Edit{
		domain.InsertAt(4, " "),
		domain.RemoveRange(1, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "a: b", out)
}

func TestApplyEdits_SkipsOverlaps(t *testing.T) {
	out, applied, err := domain.ApplyEdits("abcdef", []domain.Edit{
		domain.RemoveRange(1, 4),
		domain.RemoveRange(2, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, "aef", out)
}

func TestApplyEdits_AdjacentEdits(t *testing.T) {
	out, applied, err := domain.ApplyEdits("ab", []domain.Edit{
		domain.RemoveRange(0, 1),
		domain.InsertAt(1, "X"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "Xb", out)
}

func TestApplyEdits_OutOfRange(t *testing.T) {
	_, _, err := domain.ApplyEdits("ab", []domain.Edit{domain.RemoveRange(1, 5)})
	assert.Error(t, err)
}

func TestApplyEdits_NoEdits(t *testing.T) {
	out, applied, err := domain.ApplyEdits("unchanged", nil)
	require.NoError(t, err)
	assert.Zero(t, applied)
	assert.Equal(t, "unchanged", out)
}

func TestApplyEdits_IgnoresEmptyEdits(t *testing.T) {
	out, applied, err := domain.ApplyEdits("a :b", []domain.Edit{
		domain.RemoveRange(1, 1),
		domain.InsertAt(3, ""),
		domain.RemoveRange(1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, "a:b", out)
}
