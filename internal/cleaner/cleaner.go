// Package cleaner implements the dataset cleaning engine: quality scoring,
// exact-duplicate filtering and MinHash/LSH near-duplicate collapse over
// text-pair records. The engine is a pure in-memory batch transformation;
// all working state is scoped to one Clean call.
package cleaner

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint, not authentication
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/corpuskit/winnow/internal/domain/record"
)

// Stats counts records dropped at each pipeline stage.
type Stats struct {
	Input           int `json:"input"`
	LowQuality      int `json:"low_quality"`
	ExactDuplicates int `json:"exact_duplicates"`
	NearDuplicates  int `json:"near_duplicates"`
	Output          int `json:"output"`
}

// Cleaner runs the cleaning pipeline:
// normalize -> score -> quality gate -> exact-duplicate gate ->
// shingle/signature -> LSH grouping -> one representative per group.
type Cleaner struct {
	cfg     Config
	builder *signatureBuilder
	grouper *grouper
	workers int
}

// New validates the configuration and creates a Cleaner.
func New(cfg Config) (*Cleaner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cleaner config: %w", err)
	}
	return &Cleaner{
		cfg:     cfg,
		builder: newSignatureBuilder(cfg.NumHashes),
		grouper: newGrouper(cfg.Bands, cfg.Rows),
		workers: runtime.GOMAXPROCS(0),
	}, nil
}

// Config returns the engine configuration.
func (c *Cleaner) Config() Config { return c.cfg }

// Clean filters and deduplicates a batch. Records keep their input order;
// survivors carry their quality score. The whole pipeline is a fixed point:
// cleaning its own output changes nothing further.
func (c *Cleaner) Clean(ctx context.Context, records []record.Record) ([]record.Record, Stats, error) {
	stats := Stats{Input: len(records)}

	// Gate stages: normalize fields, score, drop low quality, then drop
	// exact duplicates. Scoring runs before the duplicate check so the
	// retained first occurrence already carries its score.
	survivors := make([]record.Record, 0, len(records))
	seen := make(map[[md5.Size]byte]struct{}, len(records))
	for _, rec := range records {
		rec = rec.WithText(Normalize(rec.Transcript()), Normalize(rec.Translation()))
		rec = rec.WithQuality(Score(rec))

		if rec.Quality() < c.cfg.MinQuality {
			stats.LowQuality++
			continue
		}

		hash := md5.Sum([]byte(rec.Content())) //nolint:gosec // see package note
		if _, dup := seen[hash]; dup {
			stats.ExactDuplicates++
			continue
		}
		seen[hash] = struct{}{}
		survivors = append(survivors, rec)
	}

	signatures, err := c.signatures(ctx, survivors)
	if err != nil {
		return nil, Stats{}, err
	}

	// Groups are ordered by first member, but the representative need not
	// be it; sort representative indexes so output follows input order.
	reps := make([]int, 0, len(survivors))
	for _, group := range c.grouper.Groups(signatures) {
		reps = append(reps, representative(survivors, group))
		stats.NearDuplicates += len(group) - 1
	}
	sort.Ints(reps)

	out := make([]record.Record, len(reps))
	for i, idx := range reps {
		out[i] = survivors[idx]
	}
	stats.Output = len(out)
	return out, stats, nil
}

// signatures computes MinHash signatures for all records. Per-record work
// is independent, so it fans out across workers.
func (c *Cleaner) signatures(ctx context.Context, recs []record.Record) ([][]uint64, error) {
	sigs := make([][]uint64, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, rec := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sigs[i] = c.builder.Signature(Shingles(rec.Content(), c.cfg.ShingleSize))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute signatures: %w", err)
	}
	return sigs, nil
}

// representative picks the group member with the highest quality score;
// ties go to the lowest index (group members are in ascending order).
func representative(recs []record.Record, group []int) int {
	best := group[0]
	for _, idx := range group[1:] {
		if recs[idx].Quality() > recs[best].Quality() {
			best = idx
		}
	}
	return best
}
