package winnow

import (
	"context"
	"time"
)

// DatasetService manages stored datasets.
type DatasetService struct {
	svc datasetUseCase
	obs *observer
}

// Put stores a dataset, replacing any existing records under the same name.
func (s *DatasetService) Put(ctx context.Context, name string, records []Record) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("dataset_put", start, err) }()

	return s.svc.Put(ctx, name, toDomainBatch(records))
}

// Get returns all records of a dataset.
func (s *DatasetService) Get(ctx context.Context, name string) (out []Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dataset_get", start, err) }()

	records, err := s.svc.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return fromDomainBatch(records), nil
}

// Delete removes a dataset.
func (s *DatasetService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("dataset_delete", start, err) }()

	return s.svc.Delete(ctx, name)
}

// List returns all stored dataset names.
func (s *DatasetService) List(ctx context.Context) (names []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dataset_list", start, err) }()

	return s.svc.List(ctx)
}

// Clean loads a dataset, runs the cleaning pipeline and writes the
// survivors back under the same name.
func (s *DatasetService) Clean(ctx context.Context, name string) (stats Stats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dataset_clean", start, err) }()

	engineStats, err := s.svc.CleanStored(ctx, name)
	if err != nil {
		return Stats{}, err
	}
	return fromStats(engineStats), nil
}
