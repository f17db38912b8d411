package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func draw(n int, next func() float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

func TestStreamIsDeterministic(t *testing.T) {
	a := NewSeeded(42).Stream("bootstrap", "Dressel_20/hold")
	b := NewSeeded(42).Stream("bootstrap", "Dressel_20/hold")

	assert.Equal(t, draw(5, a.Float64), draw(5, b.Float64))
}

func TestStreamsAreIndependentOfRequestOrder(t *testing.T) {
	r := NewSeeded(7)
	first := r.Stream("bootstrap", "A/drop")
	_ = r.Stream("bootstrap", "B/drop")
	again := NewSeeded(7).Stream("bootstrap", "A/drop")

	assert.Equal(t, draw(3, first.Float64), draw(3, again.Float64))
}

func TestStreamsDifferByKeyAndSeed(t *testing.T) {
	base := draw(3, NewSeeded(1).Stream("bootstrap", "A/hold").Float64)

	assert.NotEqual(t, base, draw(3, NewSeeded(1).Stream("bootstrap", "B/hold").Float64))
	assert.NotEqual(t, base, draw(3, NewSeeded(2).Stream("bootstrap", "A/hold").Float64))
}

func TestEmptyStageAndKeyUseBaseSeed(t *testing.T) {
	want := draw(3, rand.New(rand.NewSource(9)).Float64)
	assert.Equal(t, want, draw(3, NewSeeded(9).Stream("", "").Float64))
}
