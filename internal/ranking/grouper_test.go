package ranking

import (
	"math"
	"testing"

	"amphorank/adapters/coercer"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupPartitionsByProtocol(t *testing.T) {
	g := Group(completeSpecimen("Dressel_20", 1), []string{"Dressel_20"})

	assert.Len(t, g.Stack.Rect["Dressel_20"], 3)
	assert.Len(t, g.Stack.Hex["Dressel_20"], 2)
	assert.Len(t, g.Hold["Dressel_20"], 3)
	assert.Len(t, g.Drop["Dressel_20"], 2)

	s := g.Stack.Hex["Dressel_20"][0]
	assert.Equal(t, "Dressel_20_hex", s.RawName)
	assert.Equal(t, specimen.StackHex, s.Protocol)
	assert.Equal(t, 100.0, s.Load)
	assert.Equal(t, 12.0, s.TotalPots())
	assert.True(t, math.IsNaN(s.Compressive))
	assert.Equal(t, 3, s.Row)
}

func TestGroupDiscardsUnselectedAndMalformed(t *testing.T) {
	records := []specimen.Record{
		stackRecord("A_rect", 100, 5, 1),
		stackRecord("B_rect", 100, 5, 1),
		{"Amphorae": 42.0, "Test": "Stack", "Max Tensile (MPa)": 1.0},
		{"Test": "Hold", "Max Tensile (MPa)": 1.0},
		{"Amphorae": "   ", "Test": "Hold"},
	}

	g := Group(records, []string{"A_hex"})

	assert.Len(t, g.Stack.Rect, 1)
	assert.Contains(t, g.Stack.Rect, "A")
	assert.Empty(t, g.Hold)
}

func TestGroupWithoutSourceHintUsesPrefixRule(t *testing.T) {
	records := []specimen.Record{
		{"Amphora": "K", "Test Category": "drop test", "Max Compressive (MPa)": "2,5"},
		{"Amphora": "K", "Test Category": "Holding", "Max Tensile (MPa)": "1.5"},
		{"Amphora": "K", "Test Category": "Stack HEX", "Max Tensile (MPa)": "1.5"},
		{"Amphora": "K", "Test Category": "", "Max Tensile (MPa)": "1.5"},
	}

	g := Group(records, []string{"K"})

	require.Len(t, g.Drop["K"], 1)
	assert.Equal(t, 2.5, g.Drop["K"][0].Compressive)
	assert.Len(t, g.Hold["K"], 1)
	assert.Len(t, g.Stack.Hex["K"], 1)
	assert.Len(t, g.Stack.Rect["K"], 1)
}

func TestGroupFillTypeSelectsMassColumn(t *testing.T) {
	records := []specimen.Record{
		{
			"Amphorae": "R_hold_oil", "Test": "Hold", "Max Tensile (MPa)": 1.0,
			"Mass (Empty) (kg)": 10.0, "Mass (Wine) (kg)": 40.0, "Mass (Oil) (kg)": 37.0,
		},
		{
			"Amphorae": "R", "Test": "Hold (wine)", "Max Tensile (MPa)": 1.0,
			"Mass (Empty) (kg)": 10.0, "Mass (Wine) (kg)": 40.0, "Mass (Oil) (kg)": 37.0,
		},
		{
			"Amphorae": "R", "Test": "Hold", "Max Tensile (MPa)": 1.0,
			"Mass (Empty) (kg)": 10.0,
		},
	}

	samples := Group(records, []string{"R"}).Hold["R"]

	require.Len(t, samples, 3)
	assert.Equal(t, specimen.FillOil, samples[0].FillType)
	assert.Equal(t, 37.0, samples[0].FilledMass)
	assert.Equal(t, specimen.FillWine, samples[1].FillType)
	assert.Equal(t, 40.0, samples[1].FilledMass)
	assert.Equal(t, specimen.FillEmpty, samples[2].FillType)
	assert.Equal(t, 10.0, samples[2].FilledMass)
}

func TestGrouperStrictCoercion(t *testing.T) {
	records := []specimen.Record{{"Amphorae": "A", "Test": "Hold", "Max Tensile (MPa)": "3 MPa"}}

	lenient := Group(records, []string{"A"}).Hold["A"][0]
	strict := NewGrouper(coercer.NewNumericCoercer(coercer.CoercionConfig{})).Group(records, []string{"A"}).Hold["A"][0]

	assert.Equal(t, 3.0, lenient.Tensile)
	assert.True(t, math.IsNaN(strict.Tensile))
}

func TestIdentities(t *testing.T) {
	records := []specimen.Record{
		{"Amphorae": "koan_rect"},
		{"Amphorae": "Dressel_20_hex"},
		{"Amphorae": "Dressel_20_rect"},
		{"Amphorae": "Africana_hold_wine"},
		{"Amphorae": 7.0},
	}

	assert.Equal(t, []string{"Africana", "Dressel_20", "koan"}, Identities(records))
}

func TestProcessDropsMissingMetricAndCountsOutliers(t *testing.T) {
	var samples []specimen.Sample
	for _, v := range []float64{10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 25.0} {
		s := specimen.NewSample("A", specimen.Hold)
		s.Tensile = v
		samples = append(samples, s)
	}
	samples = append(samples, specimen.NewSample("A", specimen.Hold))

	ps := Process("A", specimen.Hold, samples, model.DefaultEngineConfig(), nil)

	assert.True(t, ps.Valid)
	assert.Equal(t, 1, ps.MissingCount)
	assert.Len(t, ps.Original, 7)
	assert.Equal(t, 1, ps.OutlierCount)
	assert.Equal(t, 6, ps.SampleSize)
	assert.Len(t, ps.Clean, len(ps.Original)-ps.OutlierCount)
	assert.Equal(t, 25.0, ps.Removed[0].Tensile)
	assert.InDelta(t, 10.0167, ps.Statistics.Mean, 1e-4)
	assert.True(t, ps.Quality.Adequate)
	assert.Nil(t, ps.Statistics.Bootstrap)
}

func TestProcessEmptySetIsInvalid(t *testing.T) {
	ps := Process("A", specimen.Drop, []specimen.Sample{specimen.NewSample("A", specimen.Drop)}, model.DefaultEngineConfig(), nil)

	assert.False(t, ps.Valid)
	assert.False(t, ps.Statistics.Valid)
	assert.Equal(t, 0.0, ps.Quality.Score)
	assert.Equal(t, 1, ps.MissingCount)
}

func TestVolumeEfficiency(t *testing.T) {
	a := specimen.NewSample("A", specimen.StackRect)
	a.Volume, a.EmptyMass = 100, 4
	b := specimen.NewSample("A", specimen.Hold)
	b.Volume = 300

	assert.Equal(t, 50.0, VolumeEfficiency([]specimen.Sample{a, b}))
	assert.Equal(t, 0.0, VolumeEfficiency([]specimen.Sample{b}))
	assert.Equal(t, 0.0, VolumeEfficiency(nil))
}
