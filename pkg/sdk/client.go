package winnow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/db"
	dbRedis "github.com/corpuskit/winnow/internal/db/redis"
	"github.com/corpuskit/winnow/internal/domain/record"
	datasetrepo "github.com/corpuskit/winnow/internal/repository/dataset"
	datasetuc "github.com/corpuskit/winnow/internal/usecase/dataset"
	healthuc "github.com/corpuskit/winnow/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "winnow:"
)

// Internal interfaces so tests can substitute the wiring.
type datasetUseCase interface {
	Clean(ctx context.Context, records []record.Record) ([]record.Record, cleaner.Stats, error)
	CleanStored(ctx context.Context, name string) (cleaner.Stats, error)
	Put(ctx context.Context, name string, records []record.Record) error
	Get(ctx context.Context, name string) ([]record.Record, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the winnow SDK entry point.
type Client struct {
	store     db.Store
	hasStore  bool
	datasets  datasetUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a winnow Client. With WithRedis the provided context is
// used for the initial readiness check; without it the client cleans
// in-memory batches only.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	engine, err := cleaner.New(cfg.engine.engine())
	if err != nil {
		return nil, fmt.Errorf("winnow: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{obs: obs}

	var repo datasetuc.Repository = noStoreRepo{}
	var pinger healthuc.DBPinger
	if len(cfg.addrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("winnow: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("winnow: database not ready: %w", err)
		}
		c.store = store
		c.hasStore = true
		repo = datasetrepo.New(store, cfg.keyPrefix)
		pinger = store
	}

	c.datasets = datasetuc.New(repo, engine, cfg.maxBatchSize, zap.NewNop())
	c.healthSvc = healthuc.New(pinger)
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if !c.hasStore {
		return ErrNoStore
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Clean runs the cleaning pipeline over a batch of records without
// touching storage.
func (c *Client) Clean(ctx context.Context, records []Record) (
	out []Record, stats Stats, err error,
) {
	start := time.Now()
	defer func() { c.obs.observe("clean", start, err) }()

	cleaned, engineStats, err := c.datasets.Clean(ctx, toDomainBatch(records))
	if err != nil {
		return nil, Stats{}, err
	}
	return fromDomainBatch(cleaned), fromStats(engineStats), nil
}

// Datasets returns the stored-dataset service. Requires WithRedis.
func (c *Client) Datasets() *DatasetService {
	return &DatasetService{svc: c.datasets, obs: c.obs}
}

// noStoreRepo backs a client created without WithRedis; every storage
// operation fails with ErrNoStore.
type noStoreRepo struct{}

func (noStoreRepo) Put(_ context.Context, _ string, _ []record.Record) error {
	return ErrNoStore
}

func (noStoreRepo) Get(_ context.Context, _ string) ([]record.Record, error) {
	return nil, ErrNoStore
}

func (noStoreRepo) Delete(_ context.Context, _ string) error {
	return ErrNoStore
}

func (noStoreRepo) List(_ context.Context) ([]string, error) {
	return nil, ErrNoStore
}
