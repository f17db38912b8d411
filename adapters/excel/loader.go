package excel

import (
	"context"
	"time"

	"amphorank/domain/specimen"
	"amphorank/internal"
	"amphorank/internal/errors"
	"amphorank/ports"

	"golang.org/x/sync/errgroup"
)

// Loader reads the stack sheet and the hold/drop sheet into one record
// sequence. It implements ports.RecordSource.
type Loader struct {
	sheet  string
	logger *internal.Logger
}

var _ ports.RecordSource = (*Loader)(nil)

// NewLoader creates a loader. sheet selects the xlsx sheet for both files.
func NewLoader(sheet string, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{sheet: sheet, logger: logger}
}

// Load reads both files concurrently, tags every record with its source
// sheet and returns the stack records followed by the hold/drop records.
func (l *Loader) Load(ctx context.Context, stackPath, holdDropPath string) ([]specimen.Record, error) {
	start := time.Now()
	var stack, holdDrop []specimen.Record

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := l.read(ctx, stackPath, specimen.SourceStack)
		stack = recs
		return err
	})
	g.Go(func() error {
		recs, err := l.read(ctx, holdDropPath, specimen.SourceHoldDrop)
		holdDrop = recs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]specimen.Record, 0, len(stack)+len(holdDrop))
	records = append(records, stack...)
	records = append(records, holdDrop...)

	l.logger.Info("[Loader] Loaded %d stack and %d hold/drop records in %v",
		len(stack), len(holdDrop), time.Since(start))
	return records, nil
}

func (l *Loader) read(ctx context.Context, path string, source specimen.Source) ([]specimen.Record, error) {
	if path == "" {
		return nil, errors.InvalidInput(string(source) + " file path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.IOError(path, err)
	}

	recs, err := NewDataReader(path, WithSheet(l.sheet), WithLogger(l.logger)).ReadRecords()
	if err != nil {
		return nil, errors.IOError(path, err)
	}
	for _, rec := range recs {
		rec[specimen.SourceColumn] = string(source)
	}
	return recs, nil
}
