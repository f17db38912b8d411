package topsis

import (
	"math"
	"testing"

	"amphorank/domain/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func criteria() []ranking.Criterion {
	return ranking.DefaultEngineConfig().Criteria()
}

func TestRankOrdersByCloseness(t *testing.T) {
	ids := []string{"worse", "better", "middle"}
	rows := [][]float64{
		{9, 9, 9, 9, 1},
		{1, 1, 1, 1, 9},
		{5, 5, 5, 5, 5},
	}

	scores := Rank(ids, rows, criteria(), 1e-10)

	require.Len(t, scores, 3)
	assert.Equal(t, "better", scores[0].Identity)
	assert.Equal(t, "middle", scores[1].Identity)
	assert.Equal(t, "worse", scores[2].Identity)
	assert.InDelta(t, 1.0, scores[0].Closeness, 1e-9)
	assert.InDelta(t, 0.0, scores[2].Closeness, 1e-9)
	for i, s := range scores {
		assert.Equal(t, i+1, s.Rank)
	}
	assert.Equal(t, 1, scores[0].Index)
}

func TestRankMonotonicity(t *testing.T) {
	// A dominates B: no worse on every criterion, strictly better on one
	cases := [][2][]float64{
		{{4, 5, 6, 7, 3}, {4, 5, 6, 8, 3}},
		{{4, 5, 6, 7, 3}, {4, 5, 6, 7, 2}},
		{{1, 1, 1, 1, 1}, {2, 2, 2, 2, 0.5}},
	}
	others := [][]float64{{3, 6, 2, 9, 4}, {8, 2, 7, 1, 6}}

	for _, c := range cases {
		rows := append([][]float64{c[0], c[1]}, others...)
		scores := Rank([]string{"A", "B", "C", "D"}, rows, criteria(), 1e-10)

		byID := map[string]Score{}
		for _, s := range scores {
			byID[s.Identity] = s
		}
		assert.GreaterOrEqual(t, byID["A"].Closeness, byID["B"].Closeness, "rows %v", c)
	}
}

func TestRankIdenticalRowsTieByIdentity(t *testing.T) {
	rows := [][]float64{{2, 2, 2, 2, 2}, {2, 2, 2, 2, 2}}

	scores := Rank([]string{"b", "a"}, rows, criteria(), 1e-10)

	assert.Equal(t, "a", scores[0].Identity)
	assert.Equal(t, "b", scores[1].Identity)
	for _, s := range scores {
		assert.False(t, math.IsNaN(s.Closeness))
		assert.Equal(t, 0.0, s.Closeness)
	}
}

func TestRankSingleAlternative(t *testing.T) {
	scores := Rank([]string{"only"}, [][]float64{{1, 2, 3, 4, 5}}, criteria(), 1e-10)

	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Equal(t, 0.0, scores[0].Closeness)
}

func TestRankEmpty(t *testing.T) {
	assert.Nil(t, Rank(nil, nil, criteria(), 1e-10))
}

func TestWeightedZeroNormColumn(t *testing.T) {
	m := DecisionMatrix([][]float64{{3, 0, 1, 1, 0}, {4, 0, 1, 1, 0}}, 5)

	w := Weighted(m, criteria())

	assert.InDelta(t, 0.2*3.0/5.0, w.At(0, 0), 1e-12)
	assert.InDelta(t, 0.2*4.0/5.0, w.At(1, 0), 1e-12)
	assert.Equal(t, 0.0, w.At(0, 1))
	assert.Equal(t, 0.0, w.At(1, 4))
}

func TestIdealsFollowDirection(t *testing.T) {
	w := mat.NewDense(2, 5, []float64{
		1, 1, 1, 1, 1,
		2, 2, 2, 2, 2,
	})

	pos, neg := Ideals(w, criteria())

	assert.Equal(t, []float64{1, 1, 1, 1, 2}, pos)
	assert.Equal(t, []float64{2, 2, 2, 2, 1}, neg)
}

func TestDecisionMatrixSanitisesNonFinite(t *testing.T) {
	m := DecisionMatrix([][]float64{{math.NaN(), math.Inf(1), 1}}, 3)
	assert.Equal(t, []float64{0, 0, 1}, mat.Row(nil, 0, m))
}
