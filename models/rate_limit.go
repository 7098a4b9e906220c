package models

import "time"

// RateLimitDecision is the outcome of counting one request against a client
// identity's quota.
type RateLimitDecision struct {
	// Allowed reports whether the request fits into the current window.
	Allowed bool

	// Limit is the configured number of requests per window.
	Limit int

	// Remaining is the number of requests still accepted in the window.
	// Never negative.
	Remaining int

	// ResetAfter is the time left until the window expires and the counter
	// starts from zero again.
	ResetAfter time.Duration
}

// RateLimitCounter is the stored state of one client identity's window.
type RateLimitCounter struct {
	// Count is the number of requests seen in the current window, including
	// the one that produced this value.
	Count int64

	// ResetAfter is the time left until the window expires.
	ResetAfter time.Duration
}
