// Package quality scores the reliability of processed sample sets and
// assigns per-protocol sub-ranks.
package quality

import (
	"math"

	"amphorank/domain/ranking"
	"amphorank/domain/stats"
)

// Inputs are the counts and variability of one processed sample set
type Inputs struct {
	CleanCount    int
	OriginalCount int
	OutlierCount  int
	CV            float64
}

// Score blends sample reliability, CV score and outlier score with the
// configured weights. minSamples is the floor below which the set is not
// statistically adequate.
func Score(in Inputs, cfg ranking.QualityConfig, minSamples int) stats.Quality {
	reliability := Reliability(in.CleanCount, cfg.ReliabilitySteps)
	cvScore := CVScore(in.CV, cfg.CVTiers, cfg.CVFloorScore)
	outlierScore := OutlierScore(in.OutlierCount, in.OriginalCount)

	return stats.Quality{
		Score:             cfg.SampleWeight*reliability + cfg.CVWeight*cvScore + cfg.OutlierWeight*outlierScore,
		SampleReliability: reliability,
		CVScore:           cvScore,
		OutlierScore:      outlierScore,
		Adequate:          in.CleanCount >= minSamples,
	}
}

// Reliability is a step function of the clean sample count: the score of
// the last step whose MinSamples does not exceed n.
func Reliability(n int, steps []ranking.ReliabilityStep) float64 {
	score := 0.0
	for _, s := range steps {
		if n < s.MinSamples {
			break
		}
		score = s.Score
	}
	return score
}

// CVScore returns the score of the first tier whose ceiling exceeds cv, or
// floor when cv is past every tier.
func CVScore(cv float64, tiers []ranking.CVTier, floor float64) float64 {
	cv = math.Abs(cv)
	for _, t := range tiers {
		if cv < t.Below {
			return t.Score
		}
	}
	return floor
}

// OutlierScore is 1 - outliers/original; 1 when nothing was tested.
func OutlierScore(outliers, original int) float64 {
	if original <= 0 {
		return 1
	}
	return 1 - float64(outliers)/float64(original)
}

// Overall averages the valid per-protocol scores; 0 when none are valid.
func Overall(scores []float64, valid []bool) float64 {
	var sum float64
	var n int
	for i, s := range scores {
		if i < len(valid) && valid[i] {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
