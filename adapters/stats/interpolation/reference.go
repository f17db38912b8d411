// Package interpolation locates the shared reference load of each stacking
// arrangement and estimates every specimen's stress at that load.
package interpolation

import (
	"math"
	"sort"

	"amphorank/domain/ranking"
	"amphorank/domain/specimen"
)

type bandSample struct {
	identity string
	load     float64
	distance float64
}

// LocateReference picks the reference load for one arrangement from the
// clean samples of the included specimens, keyed by identity.
//
// Band: samples with FoS in [FoSLower, FoSUpper], ordered by |FoS - target|
// (ties by identity then load), mean load of the first SampleCount.
// Fallback: mean over specimens of the largest load with FoS >= target.
// Fallback: DefaultLoad.
func LocateReference(arr specimen.Arrangement, sets specimen.SampleSets, cfg ranking.ReferenceConfig) ranking.ReferenceLoad {
	ids := sortedIdentities(sets)

	var band []bandSample
	for _, id := range ids {
		for _, s := range sets[id] {
			if !specimen.IsFinite(s.Load) || !specimen.IsFinite(s.FactorOfSafety) {
				continue
			}
			if s.FactorOfSafety < cfg.FoSLower || s.FactorOfSafety > cfg.FoSUpper {
				continue
			}
			band = append(band, bandSample{
				identity: id,
				load:     s.Load,
				distance: math.Abs(s.FactorOfSafety - cfg.FoSTarget),
			})
		}
	}

	if len(band) > 0 {
		sort.SliceStable(band, func(i, j int) bool {
			a, b := band[i], band[j]
			if a.distance != b.distance {
				return a.distance < b.distance
			}
			if a.identity != b.identity {
				return a.identity < b.identity
			}
			return a.load < b.load
		})
		k := cfg.SampleCount
		if k > len(band) {
			k = len(band)
		}
		var sum float64
		for _, b := range band[:k] {
			sum += b.load
		}
		return ranking.ReferenceLoad{
			Arrangement: arr,
			Load:        sum / float64(k),
			Source:      ranking.ReferenceBand,
			SampleCount: k,
		}
	}

	var sum float64
	var count int
	for _, id := range ids {
		if load, ok := MaxSafeLoad(sets[id], cfg.FoSTarget); ok {
			sum += load
			count++
		}
	}
	if count > 0 {
		return ranking.ReferenceLoad{
			Arrangement: arr,
			Load:        sum / float64(count),
			Source:      ranking.ReferenceMaxSafe,
			SampleCount: count,
		}
	}

	return ranking.ReferenceLoad{
		Arrangement: arr,
		Load:        cfg.DefaultLoad,
		Source:      ranking.ReferenceDefault,
	}
}

// MaxSafeLoad returns the largest load among samples with FoS >= minFoS.
func MaxSafeLoad(samples []specimen.Sample, minFoS float64) (float64, bool) {
	best, ok := 0.0, false
	for _, s := range samples {
		if !specimen.IsFinite(s.Load) || !specimen.IsFinite(s.FactorOfSafety) {
			continue
		}
		if s.FactorOfSafety >= minFoS && (!ok || s.Load > best) {
			best, ok = s.Load, true
		}
	}
	return best, ok
}

func sortedIdentities(sets specimen.SampleSets) []string {
	ids := make([]string, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
