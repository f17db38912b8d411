package interpolation

import (
	"sort"

	"amphorank/domain/ranking"
	"amphorank/domain/specimen"
)

type point struct {
	load  float64
	value float64
}

// points averages the metric of samples that share a load and returns one
// point per distinct load, sorted ascending.
func points(samples []specimen.Sample, metric specimen.Metric) []point {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, s := range samples {
		v := s.Value(metric)
		if !specimen.IsFinite(s.Load) || !specimen.IsFinite(v) {
			continue
		}
		sums[s.Load] += v
		counts[s.Load]++
	}
	out := make([]point, 0, len(sums))
	for load, sum := range sums {
		out = append(out, point{load: load, value: sum / float64(counts[load])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].load < out[j].load })
	return out
}

// Estimate returns the metric of a specimen at the target load.
//
//   - no usable samples: zero value, zero confidence
//   - a sample at exactly the target load: its mean, no penalty
//   - target between two loads: linear interpolation times the
//     interpolation penalty
//   - target outside the data: nearest sample times the extrapolation
//     penalty
func Estimate(samples []specimen.Sample, metric specimen.Metric, target float64, cfg ranking.InterpolationConfig) ranking.Estimate {
	pts := points(samples, metric)
	if len(pts) == 0 || !specimen.IsFinite(target) {
		return ranking.Estimate{Kind: ranking.EstimateNone}
	}

	// first index with load >= target
	i := sort.Search(len(pts), func(i int) bool { return pts[i].load >= target })

	var lower, upper *point
	if i < len(pts) {
		upper = &pts[i]
	}
	if i < len(pts) && pts[i].load == target {
		lower = &pts[i]
	} else if i > 0 {
		lower = &pts[i-1]
	}

	switch {
	case lower != nil && upper != nil && lower.load == upper.load:
		return ranking.Estimate{
			Value:      lower.value,
			Confidence: cfg.MeasuredConfidence,
			Kind:       ranking.EstimateMeasured,
		}
	case lower != nil && upper != nil:
		ratio := (target - lower.load) / (upper.load - lower.load)
		v := lower.value + ratio*(upper.value-lower.value)
		return ranking.Estimate{
			Value:      v * cfg.InterpolationPenalty,
			Confidence: cfg.InterpolationConfidence,
			Kind:       ranking.EstimateInterpolated,
		}
	case lower != nil:
		return extrapolate(lower.value, cfg)
	default:
		return extrapolate(upper.value, cfg)
	}
}

func extrapolate(v float64, cfg ranking.InterpolationConfig) ranking.Estimate {
	return ranking.Estimate{
		Value:      v * cfg.ExtrapolationPenalty,
		Confidence: cfg.ExtrapolationConfidence,
		Kind:       ranking.EstimateExtrapolated,
	}
}
