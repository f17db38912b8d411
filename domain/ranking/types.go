package ranking

import (
	"amphorank/domain/specimen"
	"amphorank/domain/stats"
)

// ProcessedSampleSet is one (specimen, protocol) sample set after outlier
// removal, with its statistics and quality.
// INVARIANTS:
// - len(Clean) == len(Original) - OutlierCount
// - the outlier test never runs on fewer than MinSampleSize (3) samples
// - Valid is true exactly when Clean holds at least one finite reading
type ProcessedSampleSet struct {
	Identity     string            `json:"identity"`
	Protocol     specimen.Protocol `json:"protocol"`
	Valid        bool              `json:"valid"`
	Original     []specimen.Sample `json:"original"` // samples with a finite metric reading
	Clean        []specimen.Sample `json:"clean"`
	Removed      []specimen.Sample `json:"removed,omitempty"`
	SampleSize   int               `json:"sample_size"`
	OutlierCount int               `json:"outlier_count"`
	MissingCount int               `json:"missing_count"` // rows dropped for lacking the metric
	Statistics   stats.Statistics  `json:"statistics"`
	Quality      stats.Quality     `json:"quality"`
}

// Rankable reports whether the set can fill its comparison criterion.
// Stack sets also need a clean sample with a finite load, otherwise no
// value at the reference load can be estimated.
func (p ProcessedSampleSet) Rankable() bool {
	if !p.Valid {
		return false
	}
	if p.Protocol.Arrangement() == specimen.ArrangementNone {
		return true
	}
	for _, s := range p.Clean {
		if specimen.IsFinite(s.Load) {
			return true
		}
	}
	return false
}

// EstimateKind records how a value at the reference load was obtained
type EstimateKind string

const (
	EstimateNone         EstimateKind = "none"
	EstimateMeasured     EstimateKind = "measured"
	EstimateInterpolated EstimateKind = "interpolated"
	EstimateExtrapolated EstimateKind = "extrapolated"
)

// Estimate is a metric value at the reference load with its confidence.
// Penalties are already applied to Value.
type Estimate struct {
	Value      float64      `json:"value"`
	Confidence float64      `json:"confidence"`
	Kind       EstimateKind `json:"kind"`
}

// ComparisonRow holds one specimen's criteria. Only specimens with
// rankable sets in all four protocols get a row, so no estimate is of
// kind none.
type ComparisonRow struct {
	Identity         string   `json:"identity"`
	Rect             Estimate `json:"rect"`
	Hex              Estimate `json:"hex"`
	HoldTensile      float64  `json:"hold_tensile"`
	DropCompressive  float64  `json:"drop_compressive"`
	VolumeEfficiency float64  `json:"volume_efficiency"`
}

// Values returns the row's criteria in the column order of EngineConfig.Criteria.
func (r ComparisonRow) Values() []float64 {
	return []float64{r.Rect.Value, r.Hex.Value, r.HoldTensile, r.DropCompressive, r.VolumeEfficiency}
}

// Value returns the raw stress the protocol's sub-rank is judged on.
func (r ComparisonRow) Value(p specimen.Protocol) float64 {
	switch p {
	case specimen.StackRect:
		return r.Rect.Value
	case specimen.StackHex:
		return r.Hex.Value
	case specimen.Hold:
		return r.HoldTensile
	case specimen.Drop:
		return r.DropCompressive
	default:
		return 0
	}
}

// SubRanks are per-protocol ordinal ranks; nil means the specimen has no
// data for that protocol.
type SubRanks struct {
	Rect *int `json:"rect"`
	Hex  *int `json:"hex"`
	Hold *int `json:"hold"`
	Drop *int `json:"drop"`
}

// Get returns the sub-rank for a protocol.
func (s SubRanks) Get(p specimen.Protocol) *int {
	switch p {
	case specimen.StackRect:
		return s.Rect
	case specimen.StackHex:
		return s.Hex
	case specimen.Hold:
		return s.Hold
	case specimen.Drop:
		return s.Drop
	default:
		return nil
	}
}

// Set assigns the sub-rank for a protocol.
func (s *SubRanks) Set(p specimen.Protocol, rank *int) {
	switch p {
	case specimen.StackRect:
		s.Rect = rank
	case specimen.StackHex:
		s.Hex = rank
	case specimen.Hold:
		s.Hold = rank
	case specimen.Drop:
		s.Drop = rank
	}
}

// Distances are the weighted Euclidean distances to the TOPSIS ideals
type Distances struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// PotCounts holds a per-arrangement pot count
type PotCounts struct {
	Rect float64 `json:"rect"`
	Hex  float64 `json:"hex"`
}

// RankingEntry is the final output for one ranked specimen
type RankingEntry struct {
	Identity        string                        `json:"identity"`
	OverallScore    float64                       `json:"overall_score"` // closeness, 0..1
	OverallRank     int                           `json:"overall_rank"`  // 1 = best
	SubRanks        SubRanks                      `json:"sub_ranks"`
	Raw             ComparisonRow                 `json:"raw"`
	Quality         float64                       `json:"quality"`
	ProtocolQuality map[specimen.Protocol]float64 `json:"protocol_quality"`
	Distances       Distances                     `json:"distances"`
	SampleSizes     map[specimen.Protocol]int     `json:"sample_sizes"`
	OutlierCounts   map[specimen.Protocol]int     `json:"outlier_counts"`
	MaxSafePots     PotCounts                     `json:"max_safe_pots"` // largest stack with FoS >= 1
}

// ReferenceSource says which rule produced a reference load
type ReferenceSource string

const (
	ReferenceBand    ReferenceSource = "band"     // mean load of samples closest to FoS 1
	ReferenceMaxSafe ReferenceSource = "max-safe" // mean per-specimen max safe load
	ReferenceDefault ReferenceSource = "default"  // configured nominal load
)

// ReferenceLoad is the shared comparison load of one stacking arrangement
type ReferenceLoad struct {
	Arrangement specimen.Arrangement `json:"arrangement"`
	Load        float64              `json:"load"`
	Source      ReferenceSource      `json:"source"`
	SampleCount int                  `json:"sample_count"` // samples or specimens averaged
}

// ReferenceLoads holds one reference load per arrangement
type ReferenceLoads struct {
	Rect ReferenceLoad `json:"rect"`
	Hex  ReferenceLoad `json:"hex"`
}

// Result is the output of one engine run. Entries are in display order.
type Result struct {
	Entries        []RankingEntry       `json:"entries"`
	ReferenceLoads ReferenceLoads       `json:"reference_loads"`
	Processed      []ProcessedSampleSet `json:"processed"`
}

// Entry returns the entry for an identity.
func (r Result) Entry(identity string) (RankingEntry, bool) {
	for _, e := range r.Entries {
		if e.Identity == identity {
			return e, true
		}
	}
	return RankingEntry{}, false
}

// MissingProtocols lists the protocols for which an identity has no
// rankable processed set, in protocol order.
func (r Result) MissingProtocols(identity string) []specimen.Protocol {
	valid := make(map[specimen.Protocol]bool)
	for _, p := range r.Processed {
		if p.Identity == identity && p.Rankable() {
			valid[p.Protocol] = true
		}
	}
	var missing []specimen.Protocol
	for _, p := range specimen.Protocols {
		if !valid[p] {
			missing = append(missing, p)
		}
	}
	return missing
}
