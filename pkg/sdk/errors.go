package winnow

import (
	"errors"

	"github.com/corpuskit/winnow/internal/domain"
)

// ErrNoStore signals a storage operation on a client created without
// WithRedis.
var ErrNoStore = errors.New("winnow: no store configured (use WithRedis)")

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrDatasetNotFound    = domain.ErrDatasetNotFound
	ErrDatasetTooLarge    = domain.ErrDatasetTooLarge
	ErrInvalidDatasetName = domain.ErrInvalidDatasetName
	ErrInvalidRecord      = domain.ErrInvalidRecord
	ErrInvalidConfig      = domain.ErrInvalidConfig
)
