package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/integrador/models"
)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryRateLimitStore is a process-local [RateLimitStore]. Counters live in a
// map guarded by a mutex; expired entries are swept lazily at most once per
// window.
type MemoryRateLimitStore struct {
	mu        sync.Mutex
	entries   map[string]*windowEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryRateLimitStore returns an empty store. now is the clock used for
// window arithmetic; nil selects time.Now.
func NewMemoryRateLimitStore(now func() time.Time) *MemoryRateLimitStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryRateLimitStore{
		entries:   make(map[string]*windowEntry),
		now:       now,
		lastSweep: now(),
	}
}

func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (models.RateLimitCounter, error) {
	if window <= 0 {
		return models.RateLimitCounter{}, ErrInvalidWindow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now, window)

	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &windowEntry{resetAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	return models.RateLimitCounter{
		Count:      entry.count,
		ResetAfter: entry.resetAt.Sub(now),
	}, nil
}

func (s *MemoryRateLimitStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryRateLimitStore) Close() error {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
	return nil
}

// Len reports the number of tracked keys, expired or not.
func (s *MemoryRateLimitStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryRateLimitStore) sweepLocked(now time.Time, window time.Duration) {
	if now.Sub(s.lastSweep) < window {
		return
	}
	for key, entry := range s.entries {
		if !now.Before(entry.resetAt) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}
