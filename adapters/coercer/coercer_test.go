package coercer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		want  float64
		valid bool
	}{
		{"nil", nil, 0, false},
		{"float", 4.25, 4.25, true},
		{"int", 12, 12, true},
		{"nan float", math.NaN(), 0, false},
		{"inf float", math.Inf(1), 0, false},
		{"bool", true, 0, false},
		{"plain string", "120", 120, true},
		{"padded string", "  0.95 ", 0.95, true},
		{"empty string", "", 0, false},
		{"text", "n/a", 0, false},
		{"NaN text", "NaN", 0, false},
		{"Inf text", "Inf", 0, false},
		{"thousands", "1,234.5", 1234.5, true},
		{"european", "1.234,5", 1234.5, true},
		{"european comma only", "12,5", 12.5, true},
		{"spaced thousands", "1 234,56", 1234.56, true},
		{"parentheses negative", "(3.5)", -3.5, true},
		{"unit suffix", "150 N", 150, true},
		{"mpa suffix", "7.1MPa", 7.1, true},
		{"scientific", "2.5e3", 2500, true},
		{"comma thousands", "1,500", 1500, true},
		{"comma thousands with unit", "2,000 N", 2000, true},
		{"multiple comma groups", "1,234,567", 1234567, true},
		{"grouped with decimals", "12,000.5", 12000.5, true},
		{"negative grouped", "-1,500", -1500, true},
		{"european two decimals", "1,25", 1.25, true},
		{"ungrouped commas", "1,23,4", 0, false},
		{"kilopascal not rescaled", "5 kPa", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Numeric(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestNumericOrNaN(t *testing.T) {
	assert.True(t, math.IsNaN(NumericOrNaN("")))
	assert.Equal(t, 3.0, NumericOrNaN("3"))
}

func TestStrictConfigRejectsEuropeanDecimals(t *testing.T) {
	c := NewNumericCoercer(CoercionConfig{})

	_, ok := c.Numeric("12,5")
	assert.False(t, ok)

	v, ok := c.Numeric("1,500")
	assert.True(t, ok)
	assert.Equal(t, 1500.0, v)

	_, ok = c.Numeric("150 N")
	assert.False(t, ok)
}
