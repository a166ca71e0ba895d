package driven

import "errors"

// ErrReadOnly is returned by AccountStore.Update when the store has no
// backing file to persist to (purely environment-sourced).
var ErrReadOnly = errors.New("account store is read-only: no backing file configured")

// AccountStore defines the driven port for layered credential resolution.
// Environment values override file values; services with no non-empty field
// are excluded from the resolved map.
type AccountStore interface {
	// Resolve returns the full service -> field -> value mapping.
	Resolve() map[string]map[string]string

	// Get returns the fields for one service, case-insensitive on the service
	// name. It returns an empty map when the service is absent, never an error.
	Get(service string) map[string]string

	// Update merges the given fields into the service entry and persists the
	// whole backing document atomically. It fails when service is empty, when
	// fields is empty or all-empty, or when the store is read-only; on failure
	// neither the file nor the in-memory map changes.
	Update(service string, fields map[string]string) error
}
