// Package topsis ranks alternatives by relative distance to the ideal and
// anti-ideal weighted profiles. All functions are pure.
package topsis

import (
	"math"
	"sort"

	"amphorank/domain/ranking"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Score is the TOPSIS outcome of one alternative
type Score struct {
	Index     int // row in the input matrix
	Identity  string
	Closeness float64
	DPlus     float64
	DMinus    float64
	Rank      int
}

// DecisionMatrix builds an n×k matrix from rows. Non-finite values become 0.
func DecisionMatrix(rows [][]float64, k int) *mat.Dense {
	data := make([]float64, 0, len(rows)*k)
	for _, r := range rows {
		for j := 0; j < k; j++ {
			v := 0.0
			if j < len(r) && !math.IsNaN(r[j]) && !math.IsInf(r[j], 0) {
				v = r[j]
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(rows), k, data)
}

// Weighted vector-normalises each column (zero norm ⇒ 0) and multiplies it
// by its criterion weight.
func Weighted(m *mat.Dense, criteria []ranking.Criterion) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, m)
		norm := floats.Norm(col, 2)
		if norm == 0 {
			continue
		}
		floats.Scale(criteria[j].Weight/norm, col)
		out.SetCol(j, col)
	}
	return out
}

// Ideals returns the positive and negative ideal per column: min/max for
// cost criteria, max/min for benefit criteria.
func Ideals(weighted *mat.Dense, criteria []ranking.Criterion) (positive, negative []float64) {
	_, c := weighted.Dims()
	positive = make([]float64, c)
	negative = make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, weighted)
		lo, hi := floats.Min(col), floats.Max(col)
		if criteria[j].Direction == ranking.Benefit {
			positive[j], negative[j] = hi, lo
		} else {
			positive[j], negative[j] = lo, hi
		}
	}
	return positive, negative
}

// Rank scores every row and returns them in display order: closeness
// descending, ties by identity ascending, ranks 1..N.
func Rank(identities []string, rows [][]float64, criteria []ranking.Criterion, epsilon float64) []Score {
	n := len(rows)
	if n == 0 {
		return nil
	}

	weighted := Weighted(DecisionMatrix(rows, len(criteria)), criteria)
	positive, negative := Ideals(weighted, criteria)

	scores := make([]Score, n)
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, weighted)
		dPlus := floats.Distance(row, positive, 2)
		dMinus := floats.Distance(row, negative, 2)
		scores[i] = Score{
			Index:     i,
			Identity:  identities[i],
			Closeness: dMinus / (dPlus + dMinus + epsilon),
			DPlus:     dPlus,
			DMinus:    dMinus,
		}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].Closeness != scores[b].Closeness {
			return scores[a].Closeness > scores[b].Closeness
		}
		return scores[a].Identity < scores[b].Identity
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}
