package ranking

import (
	"math/rand"

	"amphorank/adapters/stats/descriptive"
	"amphorank/adapters/stats/outlier"
	"amphorank/adapters/stats/quality"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"
	"amphorank/ports"
)

// bootstrapStage names the RNG stream family used for bootstrap resampling
const bootstrapStage = "bootstrap"

// Process turns one raw sample set into a ProcessedSampleSet: samples
// without a finite metric are dropped, outliers are removed iteratively,
// then statistics and quality are computed on the clean samples.
func Process(identity string, p specimen.Protocol, samples []specimen.Sample, cfg model.EngineConfig, rng ports.RNGPort) model.ProcessedSampleSet {
	metric := p.Metric()

	original := make([]specimen.Sample, 0, len(samples))
	for _, s := range samples {
		if s.HasValue(metric) {
			original = append(original, s)
		}
	}
	values := make([]float64, len(original))
	for i, s := range original {
		values[i] = s.Value(metric)
	}

	filtered := outlier.Filter(values, outlier.Config{
		Alpha:         cfg.Outlier.Alpha,
		MaxIterations: cfg.Outlier.MaxIterations,
		MinSampleSize: cfg.Outlier.MinSampleSize,
	})

	clean := make([]specimen.Sample, 0, len(filtered.Kept))
	cleanValues := make([]float64, 0, len(filtered.Kept))
	for _, i := range filtered.Kept {
		clean = append(clean, original[i])
		cleanValues = append(cleanValues, values[i])
	}
	var removed []specimen.Sample
	for _, i := range filtered.Removed {
		removed = append(removed, original[i])
	}

	out := model.ProcessedSampleSet{
		Identity:     identity,
		Protocol:     p,
		Valid:        len(clean) > 0,
		Original:     original,
		Clean:        clean,
		Removed:      removed,
		SampleSize:   len(clean),
		OutlierCount: len(removed),
		MissingCount: len(samples) - len(original),
	}

	stream := streamFor(rng, identity, p)
	out.Statistics = descriptive.Compute(cleanValues, descriptive.Config{
		ConfidenceLevel:    cfg.Statistics.ConfidenceLevel,
		BootstrapThreshold: cfg.Statistics.BootstrapThreshold,
		BootstrapResamples: cfg.Statistics.BootstrapResamples,
	}, stream)

	if out.Valid {
		out.Quality = quality.Score(quality.Inputs{
			CleanCount:    len(clean),
			OriginalCount: len(original),
			OutlierCount:  len(removed),
			CV:            out.Statistics.CoefficientOfVariation,
		}, cfg.Quality, cfg.Outlier.MinSampleSize)
	}
	return out
}

// streamFor derives the bootstrap stream of one sample set, or nil when no
// random source was injected.
func streamFor(rng ports.RNGPort, identity string, p specimen.Protocol) *rand.Rand {
	if rng == nil {
		return nil
	}
	return rng.Stream(bootstrapStage, identity+"/"+p.String())
}
