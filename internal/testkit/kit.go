package testkit

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"amphorank/adapters/rng"
	"amphorank/domain/specimen"
	"amphorank/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	records  []specimen.Record
	complete []string
}

// NewTestKit creates a test kit over the default synthetic data set
func NewTestKit() *TestKit {
	return NewTestKitWithConfig(DefaultSpecimenConfig())
}

// NewTestKitWithConfig creates a test kit over a generated data set
func NewTestKitWithConfig(config SpecimenGeneratorConfig) *TestKit {
	records, complete := NewSpecimenDataGenerator(config).GenerateRecords()
	return &TestKit{records: records, complete: complete}
}

// NewTestKitWithRecords creates a test kit over fixed records
func NewTestKitWithRecords(records []specimen.Record) *TestKit {
	return &TestKit{records: records}
}

// Records returns a copy of the kit's record slice
func (t *TestKit) Records() []specimen.Record {
	return append([]specimen.Record(nil), t.records...)
}

// CompleteIdentities lists the generated specimens with all four protocols
func (t *TestKit) CompleteIdentities() []string {
	return append([]string(nil), t.complete...)
}

// RNGAdapter returns a seeded RNG port
func (t *TestKit) RNGAdapter(seed int64) ports.RNGPort {
	return rng.NewSeeded(seed)
}

// RecordSource returns an in-memory source that ignores paths
func (t *TestKit) RecordSource() *MemorySource {
	return &MemorySource{Records: t.Records()}
}

// WriteCSV writes the stack and hold/drop records into dir and returns
// the two file paths.
func (t *TestKit) WriteCSV(dir string) (stackPath, holdDropPath string, err error) {
	var stack, holdDrop []specimen.Record
	for _, rec := range t.records {
		if rec.String(specimen.SourceColumn) == string(specimen.SourceStack) {
			stack = append(stack, rec)
		} else {
			holdDrop = append(holdDrop, rec)
		}
	}

	stackPath = filepath.Join(dir, "stack.csv")
	holdDropPath = filepath.Join(dir, "hold_drop.csv")
	if err := writeCSV(stackPath, StackHeaders, stack); err != nil {
		return "", "", err
	}
	if err := writeCSV(holdDropPath, HoldDropHeaders, holdDrop); err != nil {
		return "", "", err
	}
	return stackPath, holdDropPath, nil
}

func writeCSV(path string, headers []string, records []specimen.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = cell(rec[h])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// MemorySource is a ports.RecordSource over fixed records
type MemorySource struct {
	Records []specimen.Record
	Err     error
	Calls   int
}

// Load returns the fixed records, or Err when set
func (m *MemorySource) Load(ctx context.Context, _, _ string) ([]specimen.Record, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]specimen.Record(nil), m.Records...), nil
}
