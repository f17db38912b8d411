package ranking

import (
	"math"
	"sort"

	"amphorank/adapters/stats/interpolation"
	"amphorank/adapters/stats/quality"
	"amphorank/adapters/stats/topsis"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"
	"amphorank/ports"
)

// Rank runs the whole pipeline over an immutable record snapshot and
// returns the ranking of every selected specimen with complete
// four-protocol data. It never fails: missing or degenerate input yields
// partial or empty results. rng only feeds the diagnostic bootstrap
// intervals and may be nil.
func Rank(records []specimen.Record, selection []string, cfg model.EngineConfig, rng ports.RNGPort) model.Result {
	grouped := Group(records, selection)
	specimens := processAll(grouped, cfg, rng)

	result := model.Result{
		Entries:   []model.RankingEntry{},
		Processed: []model.ProcessedSampleSet{},
	}
	var included []specimenSets
	for _, s := range specimens {
		for _, p := range specimen.Protocols {
			if ps, ok := s.processed[p]; ok {
				result.Processed = append(result.Processed, ps)
			}
		}
		if s.complete() {
			included = append(included, s)
		}
	}

	result.ReferenceLoads = referenceLoads(included, cfg.Reference)
	if len(included) == 0 {
		return sanitizeResult(result)
	}

	rows := make([]model.ComparisonRow, len(included))
	ids := make([]string, len(included))
	values := make([][]float64, len(included))
	for i, s := range included {
		rows[i] = buildRow(s, result.ReferenceLoads, cfg)
		ids[i] = s.identity
		values[i] = rows[i].Values()
	}

	for _, score := range topsis.Rank(ids, values, cfg.Criteria(), cfg.Epsilon) {
		s := included[score.Index]
		result.Entries = append(result.Entries, entryFor(s, rows[score.Index], score, cfg))
	}
	quality.Assign(result.Entries, rows)

	return sanitizeResult(result)
}

// processAll processes every (identity, protocol) set, identities sorted.
func processAll(grouped specimen.GroupedSamples, cfg model.EngineConfig, rng ports.RNGPort) []specimenSets {
	byID := make(map[string]*specimenSets)
	for _, p := range specimen.Protocols {
		for id, samples := range grouped.Sets(p) {
			s, ok := byID[id]
			if !ok {
				s = &specimenSets{identity: id, processed: make(map[specimen.Protocol]model.ProcessedSampleSet)}
				byID[id] = s
			}
			s.processed[p] = Process(id, p, samples, cfg, rng)
		}
	}

	out := make([]specimenSets, 0, len(byID))
	for _, s := range byID {
		for _, p := range specimen.Protocols {
			s.raw = append(s.raw, grouped.Sets(p)[s.identity]...)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].identity < out[j].identity })
	return out
}

func referenceLoads(included []specimenSets, cfg model.ReferenceConfig) model.ReferenceLoads {
	rect := specimen.SampleSets{}
	hex := specimen.SampleSets{}
	for _, s := range included {
		rect[s.identity] = s.processed[specimen.StackRect].Clean
		hex[s.identity] = s.processed[specimen.StackHex].Clean
	}
	return model.ReferenceLoads{
		Rect: interpolation.LocateReference(specimen.ArrangementRect, rect, cfg),
		Hex:  interpolation.LocateReference(specimen.ArrangementHex, hex, cfg),
	}
}

func entryFor(s specimenSets, row model.ComparisonRow, score topsis.Score, cfg model.EngineConfig) model.RankingEntry {
	e := model.RankingEntry{
		Identity:        s.identity,
		OverallScore:    score.Closeness,
		OverallRank:     score.Rank,
		Raw:             row,
		ProtocolQuality: make(map[specimen.Protocol]float64, len(specimen.Protocols)),
		Distances:       model.Distances{Positive: score.DPlus, Negative: score.DMinus},
		SampleSizes:     make(map[specimen.Protocol]int, len(specimen.Protocols)),
		OutlierCounts:   make(map[specimen.Protocol]int, len(specimen.Protocols)),
		MaxSafePots: model.PotCounts{
			Rect: MaxSafePots(s.processed[specimen.StackRect].Clean, cfg.Reference.FoSTarget),
			Hex:  MaxSafePots(s.processed[specimen.StackHex].Clean, cfg.Reference.FoSTarget),
		},
	}

	scores := make([]float64, 0, len(specimen.Protocols))
	valid := make([]bool, 0, len(specimen.Protocols))
	for _, p := range specimen.Protocols {
		ps := s.processed[p]
		e.ProtocolQuality[p] = ps.Quality.Score
		e.SampleSizes[p] = ps.SampleSize
		e.OutlierCounts[p] = ps.OutlierCount
		scores = append(scores, ps.Quality.Score)
		valid = append(valid, ps.Valid)
	}
	e.Quality = quality.Overall(scores, valid)
	return e
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sanitizeResult replaces any non-finite output value with 0
func sanitizeResult(r model.Result) model.Result {
	for i := range r.Entries {
		e := &r.Entries[i]
		e.OverallScore = finite(e.OverallScore)
		e.Quality = finite(e.Quality)
		e.Distances.Positive = finite(e.Distances.Positive)
		e.Distances.Negative = finite(e.Distances.Negative)
		e.Raw.Rect.Value = finite(e.Raw.Rect.Value)
		e.Raw.Hex.Value = finite(e.Raw.Hex.Value)
		e.Raw.HoldTensile = finite(e.Raw.HoldTensile)
		e.Raw.DropCompressive = finite(e.Raw.DropCompressive)
		e.Raw.VolumeEfficiency = finite(e.Raw.VolumeEfficiency)
		e.MaxSafePots.Rect = finite(e.MaxSafePots.Rect)
		e.MaxSafePots.Hex = finite(e.MaxSafePots.Hex)
		for p, q := range e.ProtocolQuality {
			e.ProtocolQuality[p] = finite(q)
		}
	}
	r.ReferenceLoads.Rect.Load = finite(r.ReferenceLoads.Rect.Load)
	r.ReferenceLoads.Hex.Load = finite(r.ReferenceLoads.Hex.Load)
	return r
}
