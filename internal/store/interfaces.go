package store

import (
	"context"
	"time"

	"github.com/MKhiriev/integrador/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RateLimitStore keeps one fixed-window hit counter per key.
type RateLimitStore interface {
	// Increment counts one hit for key. The first hit of a window starts a
	// new window of the given length; the returned counter reports the hits in
	// the current window and the time left until it resets.
	Increment(ctx context.Context, key string, window time.Duration) (models.RateLimitCounter, error)

	// Reset forgets the counter for key.
	Reset(ctx context.Context, key string) error

	// Close releases the resources held by the store.
	Close() error
}
