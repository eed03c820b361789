package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/domain"
	"github.com/corpuskit/winnow/internal/domain/record"
	"github.com/corpuskit/winnow/internal/metrics"
)

// Service handles dataset lifecycle and cleaning runs.
type Service struct {
	repo         Repository
	engine       Engine
	maxBatchSize int
	logger       *zap.Logger
}

// New creates a dataset service. maxBatchSize <= 0 disables the size guard.
func New(repo Repository, engine Engine, maxBatchSize int, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		engine:       engine,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// Clean runs the cleaning pipeline over an ad-hoc batch without touching
// storage.
func (s *Service) Clean(ctx context.Context, records []record.Record) (
	[]record.Record, cleaner.Stats, error,
) {
	if s.maxBatchSize > 0 && len(records) > s.maxBatchSize {
		return nil, cleaner.Stats{}, fmt.Errorf(
			"batch of %d records exceeds limit %d: %w",
			len(records), s.maxBatchSize, domain.ErrDatasetTooLarge,
		)
	}

	start := time.Now()
	cleaned, stats, err := s.engine.Clean(ctx, records)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("Cleaning run failed",
			zap.Int("input", len(records)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, cleaner.Stats{}, fmt.Errorf("clean: %w", err)
	}

	metrics.ObserveClean(stats, duration)
	s.logger.Info("Cleaning run completed",
		zap.Int("input", stats.Input),
		zap.Int("low_quality", stats.LowQuality),
		zap.Int("exact_duplicates", stats.ExactDuplicates),
		zap.Int("near_duplicates", stats.NearDuplicates),
		zap.Int("output", stats.Output),
		zap.Duration("duration", duration),
	)

	return cleaned, stats, nil
}

// CleanStored loads a dataset, cleans it and writes the survivors back
// under the same name.
func (s *Service) CleanStored(ctx context.Context, name string) (cleaner.Stats, error) {
	records, err := s.repo.Get(ctx, name)
	if err != nil {
		return cleaner.Stats{}, fmt.Errorf("load dataset %s: %w", name, err)
	}

	cleaned, stats, err := s.Clean(ctx, records)
	if err != nil {
		return cleaner.Stats{}, err
	}

	if err := s.repo.Put(ctx, name, cleaned); err != nil {
		return cleaner.Stats{}, fmt.Errorf("store dataset %s: %w", name, err)
	}

	s.logger.Info("Dataset cleaned in place",
		zap.String("dataset", name),
		zap.Int("input", stats.Input),
		zap.Int("output", stats.Output),
	)
	return stats, nil
}

// Put validates and stores a dataset, replacing existing records.
func (s *Service) Put(ctx context.Context, name string, records []record.Record) error {
	if err := validateName(name); err != nil {
		return err
	}
	if s.maxBatchSize > 0 && len(records) > s.maxBatchSize {
		return fmt.Errorf(
			"dataset of %d records exceeds limit %d: %w",
			len(records), s.maxBatchSize, domain.ErrDatasetTooLarge,
		)
	}
	for i, rec := range records {
		if rec.Transcript() == "" && rec.Translation() == "" {
			return fmt.Errorf("record %d has neither transcript nor translation: %w",
				i, domain.ErrInvalidRecord)
		}
	}

	if err := s.repo.Put(ctx, name, records); err != nil {
		return fmt.Errorf("put dataset %s: %w", name, err)
	}

	s.logger.Info("Dataset stored",
		zap.String("dataset", name),
		zap.Int("records", len(records)),
	)
	return nil
}

// Get returns all records of a dataset.
func (s *Service) Get(ctx context.Context, name string) ([]record.Record, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	records, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", name, err)
	}
	return records, nil
}

// Delete removes a dataset.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete dataset %s: %w", name, err)
	}

	s.logger.Info("Dataset deleted", zap.String("dataset", name))
	return nil
}

// List returns all stored dataset names.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return names, nil
}

// validateName rejects names that would break the key scheme.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidDatasetName)
	}
	if strings.ContainsAny(name, ": \t\n*") {
		return fmt.Errorf("name %q contains reserved characters: %w",
			name, domain.ErrInvalidDatasetName)
	}
	return nil
}
