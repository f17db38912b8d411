package outlier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRemovesSingleExtremeValue(t *testing.T) {
	values := []float64{10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 25.0}

	res := Filter(values, DefaultConfig())

	assert.Equal(t, []int{6}, res.Removed)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, res.Kept)
	assert.Equal(t, 1, res.Iterations)
}

func TestFilterIsIterative(t *testing.T) {
	// 40 masks 18 until it is gone
	values := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.0, 10.1, 9.9, 18, 40}

	res := Filter(values, DefaultConfig())

	require.Len(t, res.Removed, 2)
	assert.Equal(t, 9, res.Removed[0])
	assert.Equal(t, 8, res.Removed[1])
	assert.Len(t, res.Kept, len(values)-len(res.Removed))
}

func TestFilterZeroVarianceSkipsTest(t *testing.T) {
	res := Filter([]float64{4, 4, 4, 4}, DefaultConfig())

	assert.Empty(t, res.Removed)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Kept)
}

func TestFilterBelowFloorLeavesValuesUntouched(t *testing.T) {
	res := Filter([]float64{1, 100}, DefaultConfig())
	assert.Empty(t, res.Removed)
	assert.Equal(t, []int{0, 1}, res.Kept)

	assert.Equal(t, -1, Test([]float64{1, 100}, DefaultConfig()).Index)
}

func TestFilterFloorAtThreeKeepsAllWhenGBelowCritical(t *testing.T) {
	// at n=3 the largest attainable G is 2/sqrt(3) ≈ 1.1547, under 1.155
	values := []float64{10, 10, 1000}

	c := Test(values, DefaultConfig())
	assert.Equal(t, 2, c.Index)
	assert.InDelta(t, 1.1547, c.G, 1e-4)
	assert.Equal(t, 1.155, c.Critical)
	assert.False(t, c.Outlier)

	res := Filter(values, DefaultConfig())
	assert.Empty(t, res.Removed)
	assert.Len(t, res.Kept, 3)
}

func TestFilterFloorAtThreeRemovesOneAndStops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Critical = func(n int, alpha float64) float64 { return 1.0 }
	values := []float64{10, 10.5, 30}

	res := Filter(values, cfg)

	assert.Equal(t, []int{2}, res.Removed)
	assert.Equal(t, []int{0, 1}, res.Kept)
	assert.Equal(t, 1, res.Iterations)
}

func TestFilterRespectsMaxIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 2
	cfg.Critical = func(n int, alpha float64) float64 { return 0.5 }
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	res := Filter(values, cfg)

	assert.Equal(t, 2, res.Iterations)
	assert.Len(t, res.Kept, 6)
}

func TestTestBreaksTiesByEarliestIndex(t *testing.T) {
	c := Test([]float64{0, 5, 5, 10}, DefaultConfig())
	assert.Equal(t, 0, c.Index)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	values := []float64{10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 25.0}
	orig := append([]float64(nil), values...)

	Filter(values, DefaultConfig())
	assert.Equal(t, orig, values)
}
