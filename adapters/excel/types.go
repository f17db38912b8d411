package excel

import (
	"amphorank/domain/specimen"
)

// RawRowData represents one data row as header → trimmed cell text.
// Empty cells are not stored.
type RawRowData map[string]string

// TableData is one parsed sheet
type TableData struct {
	Sheet   string       // sheet name for xlsx, empty for csv
	Headers []string     // trimmed column headers
	Rows    []RawRowData // data rows in file order
}

// Records converts the rows into engine records. Cell text is kept as is;
// numeric coercion happens during grouping.
func (t *TableData) Records() []specimen.Record {
	out := make([]specimen.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(specimen.Record, len(row))
		for k, v := range row {
			rec[k] = v
		}
		out = append(out, rec)
	}
	return out
}
