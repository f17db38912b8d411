package ports

import (
	"context"

	"amphorank/domain/specimen"
)

// RecordSource supplies the flat measurement records the ranking engine
// consumes. Implementations own file formats; the engine never sees them.
type RecordSource interface {
	// Load returns the records of the stack sheet followed by the
	// hold/drop sheet, each tagged with its source.
	Load(ctx context.Context, stackPath, holdDropPath string) ([]specimen.Record, error)
}
