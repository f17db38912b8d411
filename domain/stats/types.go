package stats

// ConfidenceInterval is a two-sided interval around a point estimate
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"` // e.g. 0.95
}

// BootstrapInterval is a percentile bootstrap interval of the mean.
// It is diagnostic output only and never feeds the ranking decision.
type BootstrapInterval struct {
	ConfidenceInterval
	Resamples int `json:"resamples"`
}

// Statistics are the descriptive statistics of one cleaned sample set
// INVARIANTS:
// - Valid is false exactly when SampleSize == 0; then every field is zero
// - no field is NaN or ±Inf
type Statistics struct {
	Valid                  bool               `json:"valid"`
	SampleSize             int                `json:"sample_size"`
	Mean                   float64            `json:"mean"`
	Median                 float64            `json:"median"`
	StdDev                 float64            `json:"std_dev"`        // sample SD (n-1)
	StandardError          float64            `json:"standard_error"` // StdDev / sqrt(n)
	CoefficientOfVariation float64            `json:"coefficient_of_variation"`
	Min                    float64            `json:"min"`
	Max                    float64            `json:"max"`
	TCritical              float64            `json:"t_critical"`
	ConfidenceInterval     ConfidenceInterval `json:"confidence_interval"`
	Bootstrap              *BootstrapInterval `json:"bootstrap,omitempty"` // only for small samples
}

// Quality is the reliability score of one processed sample set
type Quality struct {
	Score             float64 `json:"score"` // 0..1 weighted blend
	SampleReliability float64 `json:"sample_reliability"`
	CVScore           float64 `json:"cv_score"`
	OutlierScore      float64 `json:"outlier_score"`
	Adequate          bool    `json:"adequate"` // clean sample count meets the statistical floor
}
