package domain

import (
	"errors"
	"fmt"
)

// Reference errors: the caller named an entity that does not exist.
// Non-retryable.
var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrManifestNotFound = errors.New("manifest not found")
	ErrPlaceNotFound    = errors.New("place not found")
)

// ErrVersionConflict signals an optimistic-concurrency failure: the
// manifest changed underneath the caller. Retryable after a refetch.
var ErrVersionConflict = errors.New("manifest version conflict")

// ErrSyncFailed signals that the external sync did not complete. Local
// persistence is unaffected; the operation may be retried.
var ErrSyncFailed = errors.New("external sync failed")

// ConfigurationError reports bad or insufficient generation parameters.
// It is surfaced to the caller verbatim and is not retryable.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for a field
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// IsConfigurationError reports whether err is a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// CapacityMismatchError reports that a manually configured section resolved
// to zero capacity. Generation cannot proceed with an empty section.
type CapacityMismatchError struct {
	SectionName string
}

func (e *CapacityMismatchError) Error() string {
	return fmt.Sprintf("section %q resolves to zero capacity", e.SectionName)
}

// CapacityWarning reports a declared-vs-achieved capacity discrepancy from
// the closest-fit grid partition. It accompanies a successful result; it is
// not a failure.
type CapacityWarning struct {
	Declared int `json:"declared"`
	Achieved int `json:"achieved"`
}

func (w CapacityWarning) String() string {
	return fmt.Sprintf("requested %d places, generated %d (closest achievable grid fit)", w.Declared, w.Achieved)
}
