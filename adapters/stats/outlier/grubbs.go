// Package outlier implements the iterative single-outlier Grubbs filter as
// free functions over plain value slices.
package outlier

import (
	"math"

	"amphorank/adapters/stats/critical"

	"gonum.org/v1/gonum/stat"
)

// Config controls one filter run
type Config struct {
	Alpha         float64
	MaxIterations int
	MinSampleSize int // the test never runs on fewer values

	// Critical overrides the tabulated Grubbs lookup when set.
	Critical func(n int, alpha float64) float64
}

// DefaultConfig returns α = 0.05, five passes and a floor of three.
func DefaultConfig() Config {
	return Config{Alpha: 0.05, MaxIterations: 5, MinSampleSize: 3}
}

func (c Config) critical(n int) float64 {
	if c.Critical != nil {
		return c.Critical(n, c.Alpha)
	}
	return critical.Grubbs(n, c.Alpha)
}

func (c Config) floor() int {
	if c.MinSampleSize < 3 {
		return 3
	}
	return c.MinSampleSize
}

// Candidate is the most extreme value of one pass
type Candidate struct {
	Index    int     // position in the tested slice, -1 when untested
	G        float64 // |x - mean| / sd
	Critical float64
	Outlier  bool
}

// Test runs a single Grubbs pass. It reports no outlier when fewer than
// three values are given or the standard deviation is zero. Equal G values
// resolve to the earliest index.
func Test(values []float64, cfg Config) Candidate {
	n := len(values)
	if n < 3 {
		return Candidate{Index: -1}
	}
	mean, sd := stat.MeanStdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return Candidate{Index: -1}
	}

	best := Candidate{Index: -1, G: -1}
	for i, v := range values {
		g := math.Abs(v-mean) / sd
		if g > best.G {
			best.Index, best.G = i, g
		}
	}
	best.Critical = cfg.critical(n)
	best.Outlier = best.G > best.Critical
	return best
}

// Result lists indices into the original slice
type Result struct {
	Kept       []int
	Removed    []int // in removal order
	Iterations int   // passes that removed a value
}

// Filter removes outliers one at a time, recomputing mean and SD after
// every removal. It stops when a pass finds no outlier, after
// MaxIterations removals, or when fewer than MinSampleSize values remain.
func Filter(values []float64, cfg Config) Result {
	kept := make([]int, len(values))
	for i := range kept {
		kept[i] = i
	}
	res := Result{}

	current := append([]float64(nil), values...)
	for res.Iterations < cfg.MaxIterations && len(current) >= cfg.floor() {
		c := Test(current, cfg)
		if !c.Outlier {
			break
		}
		res.Removed = append(res.Removed, kept[c.Index])
		kept = append(kept[:c.Index], kept[c.Index+1:]...)
		current = append(current[:c.Index], current[c.Index+1:]...)
		res.Iterations++
	}
	res.Kept = kept
	return res
}
