package quality

import (
	"sort"

	"amphorank/domain/ranking"
	"amphorank/domain/specimen"
)

// SubRanks ranks rows on one protocol's raw stress, ascending (lower
// stress is better), ties by identity. Rows whose value is zero or
// non-finite get no rank.
func SubRanks(rows []ranking.ComparisonRow, p specimen.Protocol) map[string]int {
	type entry struct {
		identity string
		value    float64
	}
	var entries []entry
	for _, r := range rows {
		v := r.Value(p)
		if v == 0 || !specimen.IsFinite(v) {
			continue
		}
		entries = append(entries, entry{identity: r.Identity, value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value < entries[j].value
		}
		return entries[i].identity < entries[j].identity
	})

	ranks := make(map[string]int, len(entries))
	for i, e := range entries {
		ranks[e.identity] = i + 1
	}
	return ranks
}

// Assign fills every entry's SubRanks from the rows. Missing ranks stay nil.
func Assign(entries []ranking.RankingEntry, rows []ranking.ComparisonRow) {
	for _, p := range specimen.Protocols {
		ranks := SubRanks(rows, p)
		for i := range entries {
			if r, ok := ranks[entries[i].Identity]; ok {
				rank := r
				entries[i].SubRanks.Set(p, &rank)
			}
		}
	}
}
