package cleaner

import (
	"fmt"

	"github.com/corpuskit/winnow/internal/domain"
)

// Default engine parameters. Bands*Rows must equal NumHashes; the default
// 32x4 split over 128 hashes puts the LSH collision curve's useful range
// around the 0.7 similarity target.
const (
	DefaultMinQuality  = 60
	DefaultShingleSize = 5
	DefaultNumHashes   = 128
	DefaultBands       = 32
	DefaultRows        = 4
	DefaultThreshold   = 0.7
)

// Config holds the cleaning engine parameters.
type Config struct {
	// MinQuality is the minimum quality score a record needs to survive
	// the quality gate (0-100).
	MinQuality int
	// ShingleSize is the word-window length k used for similarity shingles.
	ShingleSize int
	// NumHashes is the MinHash signature length.
	NumHashes int
	// Bands and Rows control the LSH banding split; Bands*Rows == NumHashes.
	Bands int
	Rows  int
	// Threshold is the target Jaccard similarity for near-duplicate grouping.
	Threshold float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MinQuality:  DefaultMinQuality,
		ShingleSize: DefaultShingleSize,
		NumHashes:   DefaultNumHashes,
		Bands:       DefaultBands,
		Rows:        DefaultRows,
		Threshold:   DefaultThreshold,
	}
}

// Validate checks the configuration for correctness. All violations wrap
// domain.ErrInvalidConfig so callers can fail fast at construction.
func (c Config) Validate() error {
	if c.MinQuality < 0 || c.MinQuality > 100 {
		return fmt.Errorf("min quality must be between 0 and 100, got %d: %w", c.MinQuality, domain.ErrInvalidConfig)
	}
	if c.ShingleSize <= 0 {
		return fmt.Errorf("shingle size must be positive, got %d: %w", c.ShingleSize, domain.ErrInvalidConfig)
	}
	if c.NumHashes <= 0 {
		return fmt.Errorf("num hashes must be positive, got %d: %w", c.NumHashes, domain.ErrInvalidConfig)
	}
	if c.Bands <= 0 || c.Rows <= 0 {
		return fmt.Errorf("bands and rows must be positive, got %dx%d: %w", c.Bands, c.Rows, domain.ErrInvalidConfig)
	}
	if c.Bands*c.Rows != c.NumHashes {
		return fmt.Errorf(
			"bands*rows must equal num hashes: %d*%d != %d: %w",
			c.Bands, c.Rows, c.NumHashes, domain.ErrInvalidConfig,
		)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %g: %w", c.Threshold, domain.ErrInvalidConfig)
	}
	return nil
}
