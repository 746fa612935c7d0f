package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSciHelpers(t *testing.T) {
	t.Run("argmin and argmax", func(t *testing.T) {
		values := []float64{43, 42, -500}
		assert.Equal(t, 2, argmin(values))
		assert.Equal(t, 0, argmax(values))
	})

	t.Run("sum and mean", func(t *testing.T) {
		values := []float64{1, 2, 3, 4}
		assert.Equal(t, 10.0, sum(values))
		assert.Equal(t, 2.5, mean(values))
	})

	t.Run("median of odd and even length inputs", func(t *testing.T) {
		assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
		assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	})

	t.Run("median does not reorder its input", func(t *testing.T) {
		values := []float64{3, 1, 2}
		median(values)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})

	t.Run("variance of a constant vector is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, variance([]float64{5, 5, 5}))
	})

	t.Run("variance", func(t *testing.T) {
		assert.InDelta(t, 2.0, variance([]float64{1, 2, 3, 4, 5}), 1e-9)
	})

	t.Run("linspace endpoints are exact", func(t *testing.T) {
		values := linspace(0, 1, 5)
		require.Len(t, values, 5)
		assert.Equal(t, 0.0, values[0])
		assert.Equal(t, 1.0, values[4])
		assert.InDelta(t, 0.25, values[1], 1e-9)
	})

	t.Run("linspace with a single point", func(t *testing.T) {
		assert.Equal(t, []float64{3}, linspace(3, 10, 1))
	})
}

func TestMLHelpers(t *testing.T) {
	t.Run("sigmoid midpoint", func(t *testing.T) {
		assert.InDelta(t, 0.5, sigmoid(0), 1e-9)
		assert.Greater(t, sigmoid(10), 0.99)
		assert.Less(t, sigmoid(-10), 0.01)
	})

	t.Run("normalize rescales into unit range", func(t *testing.T) {
		out := normalizeVec([]float64{10, 20, 30})
		assert.Equal(t, []float64{0, 0.5, 1}, out)
	})

	t.Run("normalize of a constant vector is all zeros", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0}, normalizeVec([]float64{7, 7}))
	})

	t.Run("dot product", func(t *testing.T) {
		assert.Equal(t, 32.0, dot([]float64{1, 2, 3}, []float64{4, 5, 6}))
	})

	t.Run("mean squared error", func(t *testing.T) {
		assert.Equal(t, 0.0, meanSquaredError([]float64{1, 2}, []float64{1, 2}))
		assert.Equal(t, 1.0, meanSquaredError([]float64{1, 2}, []float64{2, 3}))
	})
}
