package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/corpuskit/winnow/internal/db"
	"github.com/corpuskit/winnow/internal/domain"
	"github.com/corpuskit/winnow/internal/domain/record"
)

// store is the consumer interface for dataset persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/dataset.Repository. Datasets are stored as
// JSON arrays of records under a single key per dataset.
type Repo struct {
	store  store
	prefix string
}

// New creates a dataset repository. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Put stores a dataset, replacing any existing records under the same name.
func (r *Repo) Put(ctx context.Context, name string, records []record.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal dataset %s: %w", name, err)
	}

	key := r.datasetKey(name)
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get returns all records of a dataset.
func (r *Repo) Get(ctx context.Context, name string) ([]record.Record, error) {
	key := r.datasetKey(name)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal dataset %s: %w", name, err)
	}
	return records, nil
}

// Delete removes a dataset.
func (r *Repo) Delete(ctx context.Context, name string) error {
	key := r.datasetKey(name)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDatasetNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns all dataset names in lexical order.
func (r *Repo) List(ctx context.Context) ([]string, error) {
	prefix := r.prefix + "dataset:"
	keys, err := r.store.Scan(ctx, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan datasets: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, prefix))
	}
	sort.Strings(names)
	return names, nil
}

func (r *Repo) datasetKey(name string) string {
	return fmt.Sprintf("%sdataset:%s", r.prefix, name)
}
