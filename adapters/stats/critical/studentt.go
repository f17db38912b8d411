package critical

import "gonum.org/v1/gonum/stat/distuv"

// TabulatedLevel is the confidence level covered by the Student-t table.
const TabulatedLevel = 0.95

// Two-sided 95% Student-t critical values (upper-tail 0.025) by degrees of freedom
var studentT95 = NewTable(
	[]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
		21, 22, 23, 24, 25, 26, 27, 28, 29, 30,
		40, 60, 120,
	},
	[]float64{
		12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262, 2.228,
		2.201, 2.179, 2.160, 2.145, 2.131, 2.120, 2.110, 2.101, 2.093, 2.086,
		2.080, 2.074, 2.069, 2.064, 2.060, 2.056, 2.052, 2.048, 2.045, 2.042,
		2.021, 2.000, 1.980,
	},
)

// StudentT returns the two-sided critical t for df degrees of freedom at
// the given confidence level. The 95% level uses the table with
// nearest-lower df; other levels are computed from the t distribution.
// df < 1 returns 0.
func StudentT(df int, level float64) float64 {
	if df < 1 {
		return 0
	}
	if level == TabulatedLevel {
		v, _ := studentT95.NearestLower(df)
		return v
	}
	alpha := 1.0 - level
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Quantile(1.0 - alpha/2.0)
}
