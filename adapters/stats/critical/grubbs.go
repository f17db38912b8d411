package critical

// DefaultGrubbs is returned when no tabulated Grubbs value applies.
const DefaultGrubbs = 2.0

func sizes(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// Two-sided Grubbs critical values for n = 3..30
var grubbsTables = map[float64]Table{
	0.05: NewTable(sizes(3, 30), []float64{
		1.155, 1.481, 1.715, 1.887, 2.020, 2.126, 2.215, 2.290, 2.355, 2.412,
		2.462, 2.507, 2.549, 2.585, 2.620, 2.651, 2.681, 2.709, 2.733, 2.758,
		2.781, 2.802, 2.822, 2.841, 2.859, 2.876, 2.893, 2.908,
	}),
	0.01: NewTable(sizes(3, 30), []float64{
		1.155, 1.496, 1.764, 1.973, 2.139, 2.274, 2.387, 2.482, 2.564, 2.636,
		2.699, 2.755, 2.806, 2.852, 2.894, 2.932, 2.968, 3.001, 3.031, 3.060,
		3.087, 3.112, 3.135, 3.157, 3.178, 3.199, 3.218, 3.236,
	}),
}

// Grubbs returns the critical G for sample size n at significance alpha.
// Untabulated n rounds down to the nearest tabulated size; n below 3 or an
// untabulated alpha yields DefaultGrubbs.
func Grubbs(n int, alpha float64) float64 {
	table, ok := grubbsTables[alpha]
	if !ok {
		return DefaultGrubbs
	}
	if v, ok := table.NearestLower(n); ok {
		return v
	}
	return DefaultGrubbs
}

// GrubbsAlphas lists the significance levels with a Grubbs table.
func GrubbsAlphas() []float64 {
	return []float64{0.01, 0.05}
}
