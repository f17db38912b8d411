package interpolation

import (
	"testing"

	"amphorank/domain/ranking"
	"amphorank/domain/specimen"

	"github.com/stretchr/testify/assert"
)

func stack(id string, load, tensile, fos float64) specimen.Sample {
	s := specimen.NewSample(id, specimen.StackRect)
	s.Load, s.Tensile, s.FactorOfSafety = load, tensile, fos
	return s
}

func interpCfg() ranking.InterpolationConfig {
	return ranking.DefaultEngineConfig().Interpolation
}

func refCfg() ranking.ReferenceConfig {
	return ranking.DefaultEngineConfig().Reference
}

func TestEstimateInterpolatesBetweenBrackets(t *testing.T) {
	samples := []specimen.Sample{
		stack("X", 150, 7, 0.9),
		stack("X", 100, 5, 1.05),
	}

	e := Estimate(samples, specimen.MetricTensile, 120, interpCfg())

	assert.Equal(t, ranking.EstimateInterpolated, e.Kind)
	assert.InDelta(t, 5.8*1.15, e.Value, 1e-9)
	assert.InDelta(t, 6.67, e.Value, 0.005)
	assert.Equal(t, 0.8, e.Confidence)
}

func TestEstimateExtrapolatesAboveAndBelow(t *testing.T) {
	samples := []specimen.Sample{stack("X", 100, 5, 1), stack("X", 150, 7, 1)}

	above := Estimate(samples, specimen.MetricTensile, 400, interpCfg())
	assert.Equal(t, ranking.EstimateExtrapolated, above.Kind)
	assert.InDelta(t, 7*1.25, above.Value, 1e-12)
	assert.Equal(t, 0.5, above.Confidence)

	below := Estimate(samples, specimen.MetricTensile, 20, interpCfg())
	assert.InDelta(t, 5*1.25, below.Value, 1e-12)
	assert.Equal(t, 0.5, below.Confidence)
}

func TestEstimateExactLoadIsMeasured(t *testing.T) {
	samples := []specimen.Sample{
		stack("X", 100, 4, 1),
		stack("X", 100, 6, 1),
		stack("X", 200, 9, 1),
	}

	e := Estimate(samples, specimen.MetricTensile, 100, interpCfg())

	assert.Equal(t, ranking.EstimateMeasured, e.Kind)
	assert.Equal(t, 5.0, e.Value)
	assert.Equal(t, 1.0, e.Confidence)
}

func TestEstimateWithoutUsableSamples(t *testing.T) {
	noLoad := specimen.NewSample("X", specimen.StackRect)
	noLoad.Tensile = 3

	e := Estimate([]specimen.Sample{noLoad}, specimen.MetricTensile, 100, interpCfg())
	assert.Equal(t, ranking.Estimate{Kind: ranking.EstimateNone}, e)

	e = Estimate(nil, specimen.MetricTensile, 100, interpCfg())
	assert.Equal(t, 0.0, e.Value)
	assert.Equal(t, 0.0, e.Confidence)
}

func TestLocateReferenceUsesClosestBandSamples(t *testing.T) {
	sets := specimen.SampleSets{
		"A": {stack("A", 100, 1, 1.00), stack("A", 200, 1, 0.95), stack("A", 900, 1, 0.5)},
		"B": {stack("B", 300, 1, 1.02), stack("B", 400, 1, 1.09)},
		"C": {stack("C", 500, 1, 0.98), stack("C", 50, 1, 2.0)},
	}
	cfg := refCfg()
	cfg.SampleCount = 3

	ref := LocateReference(specimen.ArrangementRect, sets, cfg)

	// closest to 1.0: A@100 (0), B@300 (0.02), C@500 (0.02)
	assert.Equal(t, ranking.ReferenceBand, ref.Source)
	assert.Equal(t, 3, ref.SampleCount)
	assert.InDelta(t, 300.0, ref.Load, 1e-12)
	assert.Equal(t, specimen.ArrangementRect, ref.Arrangement)
}

func TestLocateReferenceAveragesAvailableBandSamples(t *testing.T) {
	sets := specimen.SampleSets{"A": {stack("A", 120, 1, 0.92), stack("A", 80, 1, 1.1)}}

	ref := LocateReference(specimen.ArrangementHex, sets, refCfg())

	assert.Equal(t, ranking.ReferenceBand, ref.Source)
	assert.Equal(t, 2, ref.SampleCount)
	assert.InDelta(t, 100.0, ref.Load, 1e-12)
}

func TestLocateReferenceFallsBackToMaxSafeLoad(t *testing.T) {
	sets := specimen.SampleSets{
		"A": {stack("A", 100, 1, 3.0), stack("A", 200, 1, 1.5), stack("A", 400, 1, 0.4)},
		"B": {stack("B", 600, 1, 1.2)},
		"C": {stack("C", 900, 1, 0.3)},
	}

	ref := LocateReference(specimen.ArrangementRect, sets, refCfg())

	assert.Equal(t, ranking.ReferenceMaxSafe, ref.Source)
	assert.Equal(t, 2, ref.SampleCount)
	assert.InDelta(t, 400.0, ref.Load, 1e-12)
}

func TestLocateReferenceFallsBackToDefault(t *testing.T) {
	ref := LocateReference(specimen.ArrangementRect, specimen.SampleSets{}, refCfg())
	assert.Equal(t, ranking.ReferenceDefault, ref.Source)
	assert.Equal(t, 1000.0, ref.Load)

	sets := specimen.SampleSets{"A": {stack("A", 100, 1, 0.2)}}
	ref = LocateReference(specimen.ArrangementRect, sets, refCfg())
	assert.Equal(t, ranking.ReferenceDefault, ref.Source)
}

func TestMaxSafeLoad(t *testing.T) {
	load, ok := MaxSafeLoad([]specimen.Sample{stack("A", 50, 1, 1), stack("A", 70, 1, 0.99)}, 1)
	assert.True(t, ok)
	assert.Equal(t, 50.0, load)

	_, ok = MaxSafeLoad(nil, 1)
	assert.False(t, ok)
}
