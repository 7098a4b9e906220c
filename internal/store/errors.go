package store

import "errors"

// Sentinel errors returned by rate limit stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidWindow is returned when a counter is requested for a
	// non-positive window.
	ErrInvalidWindow = errors.New("rate limit window must be positive")

	// ErrCounterUnavailable wraps every failure of the counter backend.
	ErrCounterUnavailable = errors.New("rate limit counter unavailable")

	// ErrUnknownBackend is returned by [NewStorages] for an unsupported
	// counter backend name.
	ErrUnknownBackend = errors.New("unknown rate limit backend")
)
