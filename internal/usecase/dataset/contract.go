package dataset

import (
	"context"

	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/domain/record"
)

// Repository defines the storage contract for datasets.
type Repository interface {
	Put(ctx context.Context, name string, records []record.Record) error
	Get(ctx context.Context, name string) ([]record.Record, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Engine runs the cleaning pipeline over a batch of records.
type Engine interface {
	Clean(ctx context.Context, records []record.Record) ([]record.Record, cleaner.Stats, error)
}
