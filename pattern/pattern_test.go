package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/geddes/errs"
)

func TestValidate(t *testing.T) {
	t.Run("Consistent", func(t *testing.T) {
		p := Pattern{X: []float64{1, 2}, Y: []float64{3, 4}}
		require.NoError(t, p.Validate())
		require.False(t, p.HasUncertainty())
		require.Equal(t, 2, p.Len())
	})

	t.Run("WithUncertainty", func(t *testing.T) {
		p := Pattern{X: []float64{1, 2}, Y: []float64{3, 4}, E: []float64{0.1, 0.2}}
		require.NoError(t, p.Validate())
		require.True(t, p.HasUncertainty())
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, Pattern{}.Validate())
	})

	t.Run("YMismatch", func(t *testing.T) {
		p := Pattern{X: []float64{1, 2}, Y: []float64{3}}
		require.ErrorIs(t, p.Validate(), errs.ErrInconsistentPattern)
	})

	t.Run("PartialUncertainty", func(t *testing.T) {
		p := Pattern{X: []float64{1, 2}, Y: []float64{3, 4}, E: []float64{0.1}}
		require.ErrorIs(t, p.Validate(), errs.ErrInconsistentPattern)
	})
}

func TestRange(t *testing.T) {
	lo, hi := Pattern{X: []float64{3, -1, 7, 2}, Y: make([]float64, 4)}.Range()
	require.Equal(t, -1.0, lo)
	require.Equal(t, 7.0, hi)

	lo, hi = Pattern{}.Range()
	require.True(t, math.IsNaN(lo))
	require.True(t, math.IsNaN(hi))
}

func TestArithmetic(t *testing.T) {
	require.Equal(t, []float64{16, 16.5, 17}, Arithmetic(16, 0.5, 3))
	require.Empty(t, Arithmetic(1, 1, 0))
}

func TestSpan(t *testing.T) {
	require.Equal(t, []float64{10, 11, 12}, Span(10, 12, 3))
	require.Equal(t, []float64{5}, Span(5, 9, 1))
	require.Empty(t, Span(5, 9, 0))
}
