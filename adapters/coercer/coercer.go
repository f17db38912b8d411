package coercer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NumericCoercer turns raw cell values into finite float64 readings
type NumericCoercer struct {
	config CoercionConfig
}

// CoercionConfig controls which spreadsheet number formats are accepted
type CoercionConfig struct {
	AllowEuropeanDecimals bool `json:"allow_european_decimals"` // "1.234,5" and "12,5"; "1,500" stays thousands
	AllowParenNegatives   bool `json:"allow_paren_negatives"`   // "(12)" -> -12
	StripUnits            bool `json:"strip_units"`             // trailing "N", "MPa", "kg", "%"
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		AllowEuropeanDecimals: true,
		AllowParenNegatives:   true,
		StripUnits:            true,
	}
}

// NewNumericCoercer creates a coercer with the given config
func NewNumericCoercer(config CoercionConfig) *NumericCoercer {
	return &NumericCoercer{config: config}
}

var defaultCoercer = NewNumericCoercer(DefaultCoercionConfig())

// Numeric coerces with the default configuration.
func Numeric(raw any) (float64, bool) {
	return defaultCoercer.Numeric(raw)
}

// NumericOrNaN returns the coerced value, or NaN when the cell is absent
// or unparseable. NaN marks a missing reading downstream.
func NumericOrNaN(raw any) float64 {
	if v, ok := Numeric(raw); ok {
		return v
	}
	return math.NaN()
}

// Numeric deterministically converts a raw cell into a finite number.
// Empty cells, text, NaN and ±Inf all report false.
func (c *NumericCoercer) Numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		return 0, false
	case string:
		return c.parse(v)
	default:
		return c.parse(fmt.Sprintf("%v", v))
	}
}

// parse handles spreadsheet-style numbers: parentheses for negatives,
// European decimals, thousands separators and unit suffixes
func (c *NumericCoercer) parse(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	isNegative := false
	if c.config.AllowParenNegatives && strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	if c.config.StripUnits {
		cleanVal = stripUnit(cleanVal)
	}

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	if c.config.AllowEuropeanDecimals && hasComma && (hasPeriod || hasSpace) {
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) <= 3 && allDigits(afterComma) && commaIdx > strings.LastIndex(cleanVal, ".") {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
		}
	} else if hasComma && thousandsGrouped.MatchString(cleanVal) {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	} else if c.config.AllowEuropeanDecimals && hasComma && !hasPeriod {
		if strings.Count(cleanVal, ",") > 1 {
			return 0, false
		}
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	} else if hasComma {
		return 0, false
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || !finite(val) {
		return 0, false
	}
	return val, true
}

// thousandsGrouped matches "1,500", "1,234,567" and "12,000.5"; such commas
// are separators, never decimals.
var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// Suffixes in the units the engine reads. Scaled units such as kPa are
// left unparseable.
var unitSuffixes = []string{"MPa", "mm^3", "mm3", "kg", "N", "%"}

func stripUnit(s string) string {
	for _, u := range unitSuffixes {
		if strings.HasSuffix(s, u) {
			return strings.TrimSpace(strings.TrimSuffix(s, u))
		}
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
