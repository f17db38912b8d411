package specimen

import (
	"regexp"
	"sort"
	"strings"
)

// Accepted header spellings. Lookups are case-insensitive on trimmed
// headers and the first spelling present in a record wins.
var (
	IdentityColumns    = []string{"Amphorae", "Amphora", "Specimen", "Name"}
	ProtocolColumns    = []string{"Test", "Test Category", "Protocol"}
	LoadColumns        = []string{"Load (N)", "Load"}
	FoSColumns         = []string{"Factor of Safety", "FoS"}
	LayersColumns      = []string{"n (layers)", "Layers"}
	WidthColumns       = []string{"w (# pot)", "Width"}
	LengthColumns      = []string{"l (# pot)", "Length"}
	VolumeColumns      = []string{"Internal Volume (mm^3)", "Internal Volume", "Volume"}
	EmptyMassColumns   = []string{"Mass (Empty) (kg)", "Mass (Empty)"}
	WineMassColumns    = []string{"Mass (Wine) (kg)", "Mass (Wine)"}
	OilMassColumns     = []string{"Mass (Oil) (kg)", "Mass (Oil)"}
	HeightColumns      = []string{"Height (m)", "Drop Height (m)", "Height"}
	TensilePattern     = regexp.MustCompile(`(?i)max.*tensile`)
	CompressivePattern = regexp.MustCompile(`(?i)max.*compressive`)
)

// SourceColumn is set by the loader to tag which sheet a record came from.
const SourceColumn = "__source"

// Lookup returns the value of the first accepted spelling present in the record.
func (r Record) Lookup(spellings ...string) (any, bool) {
	for _, want := range spellings {
		want = strings.ToLower(strings.TrimSpace(want))
		for _, key := range r.sortedKeys() {
			if strings.ToLower(strings.TrimSpace(key)) == want {
				return r[key], true
			}
		}
	}
	return nil, false
}

// Match returns the value of the first column (sorted by header) whose name
// matches the pattern.
func (r Record) Match(pattern *regexp.Regexp) (any, bool) {
	for _, key := range r.sortedKeys() {
		if pattern.MatchString(key) {
			return r[key], true
		}
	}
	return nil, false
}

// String returns a trimmed string cell, or "" when absent or not textual.
func (r Record) String(spellings ...string) string {
	v, ok := r.Lookup(spellings...)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func (r Record) sortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
