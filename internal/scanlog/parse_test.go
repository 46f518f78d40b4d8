package scanlog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatList(t *testing.T) {
	t.Parallel()

	t.Run("bracketed list", func(t *testing.T) {
		t.Parallel()
		vs, err := parseFloatList("[1.0, 2.5, 3.0]")
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 2.5, 3.0}, vs)
	})

	t.Run("parenthesised tuple", func(t *testing.T) {
		t.Parallel()
		vs, err := parseFloatList("(0.5, -1.25, 0.0)")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, -1.25, 0.0}, vs)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		vs, err := parseFloatList("  [ 1 ,2, 3 ]  ")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, vs)
	})

	t.Run("inf and nan tokens survive parsing", func(t *testing.T) {
		t.Parallel()
		// Recorded logs encode clipped returns as inf; the validity
		// filter downstream drops them, the parser must not.
		vs, err := parseFloatList("[1.0, inf, nan]")
		require.NoError(t, err)
		require.Len(t, vs, 3)
		assert.True(t, math.IsInf(vs[1], 1))
		assert.True(t, math.IsNaN(vs[2]))
	})

	t.Run("missing brackets", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatList("1.0, 2.0")
		assert.Error(t, err)
	})

	t.Run("mismatched brackets", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatList("[1.0, 2.0)")
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatList("[]")
		assert.Error(t, err)
	})

	t.Run("garbage element", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatList("[1.0, oops, 3.0]")
		assert.Error(t, err)
	})
}

func TestParseFloatTuple(t *testing.T) {
	t.Parallel()

	t.Run("exact arity", func(t *testing.T) {
		t.Parallel()
		vs, err := parseFloatTuple("(1.0, 2.0, 3.0)", 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 2.0, 3.0}, vs)
	})

	t.Run("too few values", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatTuple("(1.0, 2.0)", 3)
		assert.ErrorContains(t, err, "expected 3 values")
	})

	t.Run("too many values", func(t *testing.T) {
		t.Parallel()
		_, err := parseFloatTuple("(1.0, 2.0, 3.0, 4.0)", 3)
		assert.ErrorContains(t, err, "expected 3 values")
	})
}
