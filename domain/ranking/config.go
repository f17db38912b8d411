package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Direction says whether a criterion is minimised or maximised
type Direction string

const (
	Cost    Direction = "cost"    // lower raw value is better
	Benefit Direction = "benefit" // higher raw value is better
)

// CriterionName identifies one column of the comparison matrix
type CriterionName string

const (
	CriterionRectTensile      CriterionName = "rect_tensile"
	CriterionHexTensile       CriterionName = "hex_tensile"
	CriterionHoldTensile      CriterionName = "hold_tensile"
	CriterionDropCompressive  CriterionName = "drop_compressive"
	CriterionVolumeEfficiency CriterionName = "volume_efficiency"
)

// Criterion is one weighted, directed ranking criterion
type Criterion struct {
	Name      CriterionName `json:"name" yaml:"name"`
	Direction Direction     `json:"direction" yaml:"direction"`
	Weight    float64       `json:"weight" yaml:"weight"`
}

// CriterionWeights holds the TOPSIS weight of each criterion.
// Weights must sum to 1.0 (±0.001).
type CriterionWeights struct {
	RectTensile      float64 `json:"rect_tensile" yaml:"rect_tensile" validate:"gte=0,lte=1"`
	HexTensile       float64 `json:"hex_tensile" yaml:"hex_tensile" validate:"gte=0,lte=1"`
	HoldTensile      float64 `json:"hold_tensile" yaml:"hold_tensile" validate:"gte=0,lte=1"`
	DropCompressive  float64 `json:"drop_compressive" yaml:"drop_compressive" validate:"gte=0,lte=1"`
	VolumeEfficiency float64 `json:"volume_efficiency" yaml:"volume_efficiency" validate:"gte=0,lte=1"`
}

// Sum returns the total of all weights.
func (w CriterionWeights) Sum() float64 {
	return w.RectTensile + w.HexTensile + w.HoldTensile + w.DropCompressive + w.VolumeEfficiency
}

// OutlierConfig controls the iterative Grubbs filter
type OutlierConfig struct {
	Alpha         float64 `json:"alpha" yaml:"alpha" validate:"gt=0,lt=1"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations" validate:"gte=0,lte=100"`
	MinSampleSize int     `json:"min_sample_size" yaml:"min_sample_size" validate:"gte=3"`
}

// StatisticsConfig controls descriptive statistics and the bootstrap
type StatisticsConfig struct {
	ConfidenceLevel    float64 `json:"confidence_level" yaml:"confidence_level" validate:"gt=0,lt=1"`
	BootstrapThreshold int     `json:"bootstrap_threshold" yaml:"bootstrap_threshold" validate:"gte=0"`
	BootstrapResamples int     `json:"bootstrap_resamples" yaml:"bootstrap_resamples" validate:"gte=1,lte=100000"`
}

// ReferenceConfig controls how the shared reference load is located
type ReferenceConfig struct {
	FoSLower    float64 `json:"fos_lower" yaml:"fos_lower" validate:"gt=0"`
	FoSUpper    float64 `json:"fos_upper" yaml:"fos_upper" validate:"gtfield=FoSLower"`
	FoSTarget   float64 `json:"fos_target" yaml:"fos_target" validate:"gt=0"`
	SampleCount int     `json:"sample_count" yaml:"sample_count" validate:"gte=1"`
	DefaultLoad float64 `json:"default_load" yaml:"default_load" validate:"gt=0"`
}

// InterpolationConfig holds the penalty factors for estimated values
type InterpolationConfig struct {
	InterpolationPenalty    float64 `json:"interpolation_penalty" yaml:"interpolation_penalty" validate:"gte=1"`
	InterpolationConfidence float64 `json:"interpolation_confidence" yaml:"interpolation_confidence" validate:"gte=0,lte=1"`
	ExtrapolationPenalty    float64 `json:"extrapolation_penalty" yaml:"extrapolation_penalty" validate:"gte=1"`
	ExtrapolationConfidence float64 `json:"extrapolation_confidence" yaml:"extrapolation_confidence" validate:"gte=0,lte=1"`
	MeasuredConfidence      float64 `json:"measured_confidence" yaml:"measured_confidence" validate:"gte=0,lte=1"`
}

// ReliabilityStep maps a minimum clean sample count to a reliability score
type ReliabilityStep struct {
	MinSamples int     `json:"min_samples" yaml:"min_samples" validate:"gte=0"`
	Score      float64 `json:"score" yaml:"score" validate:"gte=0,lte=1"`
}

// CVTier maps a coefficient-of-variation ceiling to a score
type CVTier struct {
	Below float64 `json:"below" yaml:"below" validate:"gt=0"`
	Score float64 `json:"score" yaml:"score" validate:"gte=0,lte=1"`
}

// QualityConfig holds the quality blend weights and score tables
type QualityConfig struct {
	SampleWeight     float64           `json:"sample_weight" yaml:"sample_weight" validate:"gte=0,lte=1"`
	CVWeight         float64           `json:"cv_weight" yaml:"cv_weight" validate:"gte=0,lte=1"`
	OutlierWeight    float64           `json:"outlier_weight" yaml:"outlier_weight" validate:"gte=0,lte=1"`
	ReliabilitySteps []ReliabilityStep `json:"reliability_steps" yaml:"reliability_steps" validate:"required,min=1,dive"`
	CVTiers          []CVTier          `json:"cv_tiers" yaml:"cv_tiers" validate:"dive"`
	CVFloorScore     float64           `json:"cv_floor_score" yaml:"cv_floor_score" validate:"gte=0,lte=1"`
}

// EngineConfig is the immutable configuration of one ranking run.
// It is passed by value; the engine never mutates it.
type EngineConfig struct {
	Weights       CriterionWeights    `json:"weights" yaml:"weights"`
	Outlier       OutlierConfig       `json:"outlier" yaml:"outlier"`
	Statistics    StatisticsConfig    `json:"statistics" yaml:"statistics"`
	Reference     ReferenceConfig     `json:"reference" yaml:"reference"`
	Interpolation InterpolationConfig `json:"interpolation" yaml:"interpolation"`
	Quality       QualityConfig       `json:"quality" yaml:"quality"`
	Epsilon       float64             `json:"epsilon" yaml:"epsilon" validate:"gt=0,lt=0.001"`
}

// DefaultEngineConfig returns the reference configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights: CriterionWeights{
			RectTensile:      0.20,
			HexTensile:       0.20,
			HoldTensile:      0.25,
			DropCompressive:  0.25,
			VolumeEfficiency: 0.10,
		},
		Outlier: OutlierConfig{
			Alpha:         0.05,
			MaxIterations: 5,
			MinSampleSize: 3,
		},
		Statistics: StatisticsConfig{
			ConfidenceLevel:    0.95,
			BootstrapThreshold: 10,
			BootstrapResamples: 1000,
		},
		Reference: ReferenceConfig{
			FoSLower:    0.9,
			FoSUpper:    1.1,
			FoSTarget:   1.0,
			SampleCount: 5,
			DefaultLoad: 1000,
		},
		Interpolation: InterpolationConfig{
			InterpolationPenalty:    1.15,
			InterpolationConfidence: 0.8,
			ExtrapolationPenalty:    1.25,
			ExtrapolationConfidence: 0.5,
			MeasuredConfidence:      1.0,
		},
		Quality: QualityConfig{
			SampleWeight:  0.5,
			CVWeight:      0.3,
			OutlierWeight: 0.2,
			ReliabilitySteps: []ReliabilityStep{
				{MinSamples: 0, Score: 0.10},
				{MinSamples: 3, Score: 0.30},
				{MinSamples: 5, Score: 0.50},
				{MinSamples: 10, Score: 0.70},
				{MinSamples: 20, Score: 0.90},
				{MinSamples: 30, Score: 1.00},
			},
			CVTiers: []CVTier{
				{Below: 0.10, Score: 1.0},
				{Below: 0.20, Score: 0.8},
			},
			CVFloorScore: 0.6,
		},
		Epsilon: 1e-10,
	}
}

// Criteria returns the ranking criteria in matrix column order.
func (c EngineConfig) Criteria() []Criterion {
	return []Criterion{
		{Name: CriterionRectTensile, Direction: Cost, Weight: c.Weights.RectTensile},
		{Name: CriterionHexTensile, Direction: Cost, Weight: c.Weights.HexTensile},
		{Name: CriterionHoldTensile, Direction: Cost, Weight: c.Weights.HoldTensile},
		{Name: CriterionDropCompressive, Direction: Cost, Weight: c.Weights.DropCompressive},
		{Name: CriterionVolumeEfficiency, Direction: Benefit, Weight: c.Weights.VolumeEfficiency},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints plus the cross-field rules the tags
// cannot express.
func (c EngineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("engine config: criterion weights sum to %.4f, must sum to 1.0", sum)
	}
	q := c.Quality
	if sum := q.SampleWeight + q.CVWeight + q.OutlierWeight; math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("engine config: quality weights sum to %.4f, must sum to 1.0", sum)
	}
	if !sort.SliceIsSorted(q.ReliabilitySteps, func(i, j int) bool {
		return q.ReliabilitySteps[i].MinSamples < q.ReliabilitySteps[j].MinSamples
	}) {
		return fmt.Errorf("engine config: reliability steps must be sorted by min_samples")
	}
	if !sort.SliceIsSorted(q.CVTiers, func(i, j int) bool {
		return q.CVTiers[i].Below < q.CVTiers[j].Below
	}) {
		return fmt.Errorf("engine config: cv tiers must be sorted by below")
	}
	if c.Reference.FoSTarget < c.Reference.FoSLower || c.Reference.FoSTarget > c.Reference.FoSUpper {
		return fmt.Errorf("engine config: fos_target %.3f outside band [%.3f, %.3f]",
			c.Reference.FoSTarget, c.Reference.FoSLower, c.Reference.FoSUpper)
	}
	return nil
}
