package specimen

import (
	"encoding/json"
	"math"
)

// Record is one parsed tabular row, keyed by column header.
// Values are whatever the loader produced: string, float64, int or nil.
type Record map[string]any

// Sample is one test measurement. Fields that do not apply to the sample's
// protocol, or that were absent in the source row, hold NaN and are excluded
// from every aggregate.
type Sample struct {
	Identity       string   // normalised specimen identity
	RawName        string   // identity cell as it appeared in the source
	Protocol       Protocol // assigned once during grouping
	FillType       FillType
	Row            int // position in the input record sequence
	Load           float64
	Tensile        float64
	Compressive    float64
	FactorOfSafety float64
	Layers         float64
	Width          float64
	Length         float64
	Volume         float64
	EmptyMass      float64
	FilledMass     float64
	Height         float64
}

// NewSample returns a sample with every numeric field marked absent.
func NewSample(identity string, protocol Protocol) Sample {
	nan := math.NaN()
	return Sample{
		Identity:       identity,
		Protocol:       protocol,
		FillType:       FillEmpty,
		Load:           nan,
		Tensile:        nan,
		Compressive:    nan,
		FactorOfSafety: nan,
		Layers:         nan,
		Width:          nan,
		Length:         nan,
		Volume:         nan,
		EmptyMass:      nan,
		FilledMass:     nan,
		Height:         nan,
	}
}

// Value returns the sample's reading for the given metric (NaN when absent).
func (s Sample) Value(m Metric) float64 {
	switch m {
	case MetricTensile:
		return s.Tensile
	case MetricCompressive:
		return s.Compressive
	default:
		return math.NaN()
	}
}

// HasValue reports whether the metric reading is present and finite.
func (s Sample) HasValue(m Metric) bool {
	return IsFinite(s.Value(m))
}

// TotalPots is the pot count of a stacking arrangement (w × l × layers).
func (s Sample) TotalPots() float64 {
	return s.Width * s.Length * s.Layers
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON omits absent readings; encoding/json rejects NaN.
func (s Sample) MarshalJSON() ([]byte, error) {
	opt := func(v float64) *float64 {
		if !IsFinite(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Identity       string   `json:"identity"`
		RawName        string   `json:"raw_name,omitempty"`
		Protocol       Protocol `json:"protocol"`
		FillType       FillType `json:"fill_type"`
		Row            int      `json:"row"`
		Load           *float64 `json:"load,omitempty"`
		Tensile        *float64 `json:"tensile,omitempty"`
		Compressive    *float64 `json:"compressive,omitempty"`
		FactorOfSafety *float64 `json:"factor_of_safety,omitempty"`
		Layers         *float64 `json:"layers,omitempty"`
		Width          *float64 `json:"width,omitempty"`
		Length         *float64 `json:"length,omitempty"`
		Volume         *float64 `json:"volume,omitempty"`
		EmptyMass      *float64 `json:"empty_mass,omitempty"`
		FilledMass     *float64 `json:"filled_mass,omitempty"`
		Height         *float64 `json:"height,omitempty"`
	}{
		Identity:       s.Identity,
		RawName:        s.RawName,
		Protocol:       s.Protocol,
		FillType:       s.FillType,
		Row:            s.Row,
		Load:           opt(s.Load),
		Tensile:        opt(s.Tensile),
		Compressive:    opt(s.Compressive),
		FactorOfSafety: opt(s.FactorOfSafety),
		Layers:         opt(s.Layers),
		Width:          opt(s.Width),
		Length:         opt(s.Length),
		Volume:         opt(s.Volume),
		EmptyMass:      opt(s.EmptyMass),
		FilledMass:     opt(s.FilledMass),
		Height:         opt(s.Height),
	})
}

// SampleSets maps specimen identity to its samples for one protocol.
type SampleSets map[string][]Sample

// StackGroups splits stack samples by arrangement.
type StackGroups struct {
	Rect SampleSets `json:"rect"`
	Hex  SampleSets `json:"hex"`
}

// GroupedSamples is the DataGrouper output:
// {stack: {rect, hex}, hold, drop}, each keyed by identity.
type GroupedSamples struct {
	Stack StackGroups `json:"stack"`
	Hold  SampleSets  `json:"hold"`
	Drop  SampleSets  `json:"drop"`
}

// NewGroupedSamples returns empty, non-nil groups.
func NewGroupedSamples() GroupedSamples {
	return GroupedSamples{
		Stack: StackGroups{Rect: SampleSets{}, Hex: SampleSets{}},
		Hold:  SampleSets{},
		Drop:  SampleSets{},
	}
}

// Sets returns the sample sets for one protocol.
func (g GroupedSamples) Sets(p Protocol) SampleSets {
	switch p {
	case StackRect:
		return g.Stack.Rect
	case StackHex:
		return g.Stack.Hex
	case Hold:
		return g.Hold
	case Drop:
		return g.Drop
	default:
		return nil
	}
}

// Add appends a sample to the set its protocol selects.
func (g GroupedSamples) Add(s Sample) {
	sets := g.Sets(s.Protocol)
	if sets == nil {
		return
	}
	sets[s.Identity] = append(sets[s.Identity], s)
}
