package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDatasetNotFound signals a missing dataset.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidConfig signals an invalid cleaning configuration.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrDatasetTooLarge signals a batch exceeding the configured size limit.
	ErrDatasetTooLarge = errors.New("dataset too large")
	// ErrInvalidRecord signals a record payload that cannot be decoded.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidDatasetName signals an unusable dataset name.
	ErrInvalidDatasetName = errors.New("invalid dataset name")
)
