package testkit

import (
	"amphorank/domain/specimen"
)

// Header orders used when fixtures are written to disk
var (
	StackHeaders = []string{
		"Amphorae", "Test", "Load (N)", "Factor of Safety", "Max Tensile (MPa)",
		"w (# pot)", "l (# pot)", "n (layers)", "Internal Volume (mm^3)", "Mass (Empty) (kg)",
	}
	HoldDropHeaders = []string{
		"Amphorae", "Test", "Max Tensile (MPa)", "Max Compressive (MPa)", "Height (m)",
	}
)

// StackRecord is one 2×2×3 stacking measurement
func StackRecord(name string, load, tensile, fos float64) specimen.Record {
	return specimen.Record{
		"Amphorae":               name,
		"Test":                   "Stack",
		"Load (N)":               load,
		"Max Tensile (MPa)":      tensile,
		"Factor of Safety":       fos,
		"w (# pot)":              2.0,
		"l (# pot)":              2.0,
		"n (layers)":             3.0,
		"Internal Volume (mm^3)": 6.0e6,
		"Mass (Empty) (kg)":      12.0,
		specimen.SourceColumn:    string(specimen.SourceStack),
	}
}

// HoldRecord is one handle-hold measurement
func HoldRecord(name string, tensile float64) specimen.Record {
	return specimen.Record{
		"Amphorae":            name,
		"Test":                "Hold",
		"Max Tensile (MPa)":   tensile,
		specimen.SourceColumn: string(specimen.SourceHoldDrop),
	}
}

// DropRecord is one 1 m drop measurement
func DropRecord(name string, compressive float64) specimen.Record {
	return specimen.Record{
		"Amphorae":              name,
		"Test":                  "Drop 1m",
		"Max Compressive (MPa)": compressive,
		"Height (m)":            1.0,
		specimen.SourceColumn:   string(specimen.SourceHoldDrop),
	}
}

// CompleteSpecimen returns records covering all four protocols. A larger
// factor means higher stress everywhere, so a lower factor ranks better.
func CompleteSpecimen(name string, factor float64) []specimen.Record {
	return []specimen.Record{
		StackRecord(name+"_rect", 100, 5*factor, 1.05),
		StackRecord(name+"_rect", 150, 7*factor, 0.9),
		StackRecord(name+"_rect", 200, 9*factor, 0.7),
		StackRecord(name+"_hex", 100, 4*factor, 1.1),
		StackRecord(name+"_hex", 150, 6*factor, 0.95),
		HoldRecord(name+"_hold", 3*factor),
		HoldRecord(name+"_hold", 3.2*factor),
		HoldRecord(name+"_hold", 2.9*factor),
		DropRecord(name, 8*factor),
		DropRecord(name, 8.4*factor),
	}
}

// WithoutProtocol drops every record of the given test label.
func WithoutProtocol(records []specimen.Record, test string) []specimen.Record {
	out := make([]specimen.Record, 0, len(records))
	for _, rec := range records {
		if rec.String(specimen.ProtocolColumns...) != test {
			out = append(out, rec)
		}
	}
	return out
}
