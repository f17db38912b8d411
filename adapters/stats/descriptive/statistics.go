// Package descriptive computes the per-sample-set statistics: location,
// spread, Student-t confidence interval and, for small samples, a
// percentile bootstrap interval of the mean.
package descriptive

import (
	"math"
	"math/rand"
	"sort"

	"amphorank/adapters/stats/critical"
	domainstats "amphorank/domain/stats"

	"github.com/montanaflynn/stats"
)

// Config controls the statistics engine
type Config struct {
	ConfidenceLevel    float64
	BootstrapThreshold int // bootstrap runs when 2 <= n < threshold
	BootstrapResamples int
}

// DefaultConfig returns 95% intervals and 1000 bootstrap resamples below n = 10.
func DefaultConfig() Config {
	return Config{ConfidenceLevel: 0.95, BootstrapThreshold: 10, BootstrapResamples: 1000}
}

// Compute returns statistics for the finite values in data. An empty input
// reports Valid=false with every field zero. rng may be nil, in which case
// no bootstrap interval is produced.
func Compute(data []float64, cfg Config, rng *rand.Rand) domainstats.Statistics {
	values := finiteValues(data)
	n := len(values)
	if n == 0 {
		return domainstats.Statistics{}
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	var sd float64
	if n > 1 {
		sd, _ = stats.StandardDeviationSample(values)
	}
	se := sd / math.Sqrt(float64(n))

	var cv float64
	if mean != 0 {
		cv = sd / math.Abs(mean)
	}

	tCrit := critical.StudentT(n-1, cfg.ConfidenceLevel)
	margin := tCrit * se

	out := domainstats.Statistics{
		Valid:                  true,
		SampleSize:             n,
		Mean:                   mean,
		Median:                 median,
		StdDev:                 sd,
		StandardError:          se,
		CoefficientOfVariation: cv,
		Min:                    minVal,
		Max:                    maxVal,
		TCritical:              tCrit,
		ConfidenceInterval: domainstats.ConfidenceInterval{
			Lower: mean - margin,
			Upper: mean + margin,
			Level: cfg.ConfidenceLevel,
		},
	}

	if rng != nil && n >= 2 && n < cfg.BootstrapThreshold && cfg.BootstrapResamples > 0 {
		b := Bootstrap(values, cfg.BootstrapResamples, cfg.ConfidenceLevel, rng)
		out.Bootstrap = &b
	}
	return sanitize(out)
}

// Bootstrap draws resamples with replacement, records each resample mean,
// sorts them and reports the percentile bounds by index:
// ⌊q·B⌋ and ⌊(1-q)·B⌋ with q = (1-level)/2, clamped to the last index.
func Bootstrap(values []float64, resamples int, level float64, rng *rand.Rand) domainstats.BootstrapInterval {
	n := len(values)
	if n == 0 || resamples <= 0 {
		return domainstats.BootstrapInterval{}
	}

	means := make(stats.Float64Data, resamples)
	resample := make([]float64, n)
	for b := 0; b < resamples; b++ {
		for i := range resample {
			resample[i] = values[rng.Intn(n)]
		}
		means[b], _ = stats.Mean(resample)
	}
	sort.Sort(means)

	q := (1 - level) / 2
	lower := percentileIndex(q, resamples)
	upper := percentileIndex(1-q, resamples)

	return domainstats.BootstrapInterval{
		ConfidenceInterval: domainstats.ConfidenceInterval{
			Lower: means[lower],
			Upper: means[upper],
			Level: level,
		},
		Resamples: resamples,
	}
}

func percentileIndex(q float64, size int) int {
	i := int(math.Floor(q * float64(size)))
	if i < 0 {
		return 0
	}
	if i > size-1 {
		return size - 1
	}
	return i
}

func finiteValues(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// sanitize zeroes any non-finite field so results always encode as JSON
func sanitize(s domainstats.Statistics) domainstats.Statistics {
	fix := func(v *float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
		}
	}
	for _, v := range []*float64{
		&s.Mean, &s.Median, &s.StdDev, &s.StandardError, &s.CoefficientOfVariation,
		&s.Min, &s.Max, &s.TCritical, &s.ConfidenceInterval.Lower, &s.ConfidenceInterval.Upper,
	} {
		fix(v)
	}
	if s.Bootstrap != nil {
		fix(&s.Bootstrap.Lower)
		fix(&s.Bootstrap.Upper)
	}
	return s
}
