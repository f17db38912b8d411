// Package ranking is the statistical ranking engine: grouping, outlier
// removal, statistics, reference loads, interpolation, TOPSIS and quality.
// Everything here is a pure function of its inputs.
package ranking

import (
	"math"
	"sort"
	"strings"

	"amphorank/adapters/coercer"
	"amphorank/domain/specimen"
)

// Grouper partitions flat records into per-protocol, per-identity sample sets
type Grouper struct {
	coercer *coercer.NumericCoercer
}

// NewGrouper creates a grouper that reads numeric cells with c
func NewGrouper(c *coercer.NumericCoercer) *Grouper {
	if c == nil {
		c = coercer.NewNumericCoercer(coercer.DefaultCoercionConfig())
	}
	return &Grouper{coercer: c}
}

// Group keeps only records whose normalised identity is selected and
// assigns each one its protocol. Records with a missing or empty identity
// cell are dropped.
func (g *Grouper) Group(records []specimen.Record, selection []string) specimen.GroupedSamples {
	out := specimen.NewGroupedSamples()
	selected := selectionSet(selection)
	if len(selected) == 0 {
		return out
	}

	for i, rec := range records {
		raw := rec.String(specimen.IdentityColumns...)
		if raw == "" {
			continue
		}
		id, suffixes := specimen.NormalizeIdentity(raw)
		if id == "" || !selected[id] {
			continue
		}
		out.Add(g.sample(i, rec, raw, id, suffixes))
	}
	return out
}

func (g *Grouper) sample(row int, rec specimen.Record, raw, id string, suffixes []string) specimen.Sample {
	label := rec.String(specimen.ProtocolColumns...)
	source := specimen.ParseSource(rec.String(specimen.SourceColumn))

	s := specimen.NewSample(id, specimen.ClassifyProtocol(label, source, suffixes))
	s.RawName = raw
	s.Row = row
	s.FillType = specimen.ClassifyFill(label, suffixes)

	s.Load = g.lookup(rec, specimen.LoadColumns)
	s.FactorOfSafety = g.lookup(rec, specimen.FoSColumns)
	s.Layers = g.lookup(rec, specimen.LayersColumns)
	s.Width = g.lookup(rec, specimen.WidthColumns)
	s.Length = g.lookup(rec, specimen.LengthColumns)
	s.Volume = g.lookup(rec, specimen.VolumeColumns)
	s.EmptyMass = g.lookup(rec, specimen.EmptyMassColumns)
	s.Height = g.lookup(rec, specimen.HeightColumns)
	if v, ok := rec.Match(specimen.TensilePattern); ok {
		s.Tensile = g.numeric(v)
	}
	if v, ok := rec.Match(specimen.CompressivePattern); ok {
		s.Compressive = g.numeric(v)
	}

	switch s.FillType {
	case specimen.FillWine:
		s.FilledMass = g.lookup(rec, specimen.WineMassColumns)
	case specimen.FillOil:
		s.FilledMass = g.lookup(rec, specimen.OilMassColumns)
	default:
		s.FilledMass = s.EmptyMass
	}
	return s
}

func (g *Grouper) lookup(rec specimen.Record, spellings []string) float64 {
	v, ok := rec.Lookup(spellings...)
	if !ok {
		return math.NaN()
	}
	return g.numeric(v)
}

func (g *Grouper) numeric(v any) float64 {
	if f, ok := g.coercer.Numeric(v); ok {
		return f
	}
	return math.NaN()
}

// Group partitions records with the default numeric coercion.
func Group(records []specimen.Record, selection []string) specimen.GroupedSamples {
	return NewGrouper(nil).Group(records, selection)
}

// Identities lists every normalised identity present in the records,
// sorted case-insensitively.
func Identities(records []specimen.Record) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range records {
		id := specimen.Identity(rec.String(specimen.IdentityColumns...))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := strings.ToLower(ids[i]), strings.ToLower(ids[j])
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

func selectionSet(selection []string) map[string]bool {
	set := make(map[string]bool, len(selection))
	for _, s := range selection {
		if id := specimen.Identity(s); id != "" {
			set[id] = true
		}
	}
	return set
}
