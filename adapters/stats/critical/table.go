// Package critical holds the tabulated critical values used by the outlier
// filter and the confidence intervals. Lookups round down to the nearest
// tabulated key; changing that policy changes statistical conclusions.
package critical

import "sort"

// Table is an immutable set of (key, value) pairs sorted by key
type Table struct {
	keys   []int
	values []float64
}

// NewTable builds a table from parallel key/value slices. Keys must be
// strictly increasing.
func NewTable(keys []int, values []float64) Table {
	if len(keys) != len(values) {
		panic("critical: keys and values differ in length")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			panic("critical: keys must be strictly increasing")
		}
	}
	return Table{
		keys:   append([]int(nil), keys...),
		values: append([]float64(nil), values...),
	}
}

// NearestLower returns the value of the largest key <= k. ok is false when
// k is below the smallest key or the table is empty.
func (t Table) NearestLower(k int) (float64, bool) {
	i := sort.SearchInts(t.keys, k+1) - 1
	if i < 0 {
		return 0, false
	}
	return t.values[i], true
}

// Keys returns a copy of the tabulated keys.
func (t Table) Keys() []int {
	return append([]int(nil), t.keys...)
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.keys) }
