package ranking

import (
	"amphorank/adapters/stats/interpolation"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"

	"github.com/montanaflynn/stats"
)

// specimenSets holds every processed set of one identity plus its raw samples
type specimenSets struct {
	identity  string
	processed map[specimen.Protocol]model.ProcessedSampleSet
	raw       []specimen.Sample
}

// complete reports whether the specimen has a rankable set for every
// protocol.
func (s specimenSets) complete() bool {
	for _, p := range specimen.Protocols {
		if !s.processed[p].Rankable() {
			return false
		}
	}
	return true
}

// buildRow assembles the comparison criteria of one complete specimen.
func buildRow(s specimenSets, refs model.ReferenceLoads, cfg model.EngineConfig) model.ComparisonRow {
	rect := s.processed[specimen.StackRect]
	hex := s.processed[specimen.StackHex]

	return model.ComparisonRow{
		Identity:         s.identity,
		Rect:             interpolation.Estimate(rect.Clean, specimen.MetricTensile, refs.Rect.Load, cfg.Interpolation),
		Hex:              interpolation.Estimate(hex.Clean, specimen.MetricTensile, refs.Hex.Load, cfg.Interpolation),
		HoldTensile:      s.processed[specimen.Hold].Statistics.Mean,
		DropCompressive:  s.processed[specimen.Drop].Statistics.Mean,
		VolumeEfficiency: VolumeEfficiency(s.raw),
	}
}

// VolumeEfficiency is mean internal volume over mean empty mass across all
// of a specimen's samples, 0 when either is unavailable.
func VolumeEfficiency(samples []specimen.Sample) float64 {
	var volumes, masses []float64
	for _, s := range samples {
		if specimen.IsFinite(s.Volume) {
			volumes = append(volumes, s.Volume)
		}
		if specimen.IsFinite(s.EmptyMass) {
			masses = append(masses, s.EmptyMass)
		}
	}
	volume, err := stats.Mean(volumes)
	if err != nil {
		return 0
	}
	mass, err := stats.Mean(masses)
	if err != nil || mass == 0 {
		return 0
	}
	return volume / mass
}

// MaxSafePots returns the largest stack size (w × l × layers) tested with
// a factor of safety of at least minFoS, 0 when none was.
func MaxSafePots(samples []specimen.Sample, minFoS float64) float64 {
	best := 0.0
	for _, s := range samples {
		pots := s.TotalPots()
		if !specimen.IsFinite(pots) || !specimen.IsFinite(s.FactorOfSafety) {
			continue
		}
		if s.FactorOfSafety >= minFoS && pots > best {
			best = pots
		}
	}
	return best
}
