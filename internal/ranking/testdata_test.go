package ranking

import (
	"fmt"
	"math/rand"

	"amphorank/domain/specimen"
	"amphorank/internal/testkit"
)

var (
	stackRecord      = testkit.StackRecord
	holdRecord       = testkit.HoldRecord
	dropRecord       = testkit.DropRecord
	completeSpecimen = testkit.CompleteSpecimen
)

// randomRecords builds a reproducible mixed data set where some specimens
// miss whole protocols.
func randomRecords(seed int64, specimens int) ([]specimen.Record, []string) {
	r := rand.New(rand.NewSource(seed))
	var records []specimen.Record
	var names []string
	for i := 0; i < specimens; i++ {
		name := fmt.Sprintf("S%02d", i)
		names = append(names, name)
		base := 0.5 + r.Float64()*2
		for _, rec := range completeSpecimen(name, base) {
			// drop whole protocols for roughly a third of the specimens
			test := rec.String(specimen.ProtocolColumns...)
			if i%3 == 1 && test == "Hold" {
				continue
			}
			if i%3 == 2 && r.Intn(2) == 0 && test == "Drop 1m" {
				continue
			}
			if v, ok := rec["Max Tensile (MPa)"].(float64); ok {
				rec["Max Tensile (MPa)"] = v * (0.9 + r.Float64()*0.2)
			}
			records = append(records, rec)
		}
	}
	return records, names
}
