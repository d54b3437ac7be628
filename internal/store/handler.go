package store

import (
	"context"

	"etlcli/internal/dataset"
)

// DataHandler reads datasets from a source and writes them to a
// destination. The meaning of source and dest depends on the
// implementation: a file path for LocalHandler, a table name for
// PostgresHandler.
type DataHandler interface {
	Read(ctx context.Context, source string) (*dataset.Dataset, error)
	Write(ctx context.Context, d *dataset.Dataset, dest string) error
}
