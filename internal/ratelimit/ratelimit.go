// Package ratelimit implements an in-process sliding-window rate
// limiter. Buckets are keyed by (scope, client) and hold the
// timestamps of accepted requests inside the current window, so a
// client cannot double its budget by straddling two fixed windows.
//
// State is process-local. Limits here are small and the service runs
// single-instance; a multi-instance deployment would need a shared
// store instead.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of a limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store holds the rate-limit buckets. Construct one per process and
// inject it into handlers; its lifetime matches the server's.
type Store struct {
	mu      sync.Mutex
	buckets map[string][]time.Time

	now func() time.Time
}

// NewStore creates an empty bucket store.
func NewStore() *Store {
	return &Store{
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// CheckAndConsume prunes the bucket for key to the window ending now,
// then either consumes a slot or rejects. window must be positive and
// limit at least 1. There are no error conditions; a result is always
// returned.
//
// On rejection ResetAt is the instant the window next has room (oldest
// retained timestamp plus window). On admission ResetAt is now plus
// window.
func (s *Store) CheckAndConsume(key string, window time.Duration, limit int) Result {
	now := s.now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[key]

	// Prune lazily on access; timestamps are appended in order, so
	// everything after the first retained entry is inside the window.
	keep := 0
	for keep < len(bucket) && !bucket[keep].After(cutoff) {
		keep++
	}
	bucket = bucket[keep:]

	if len(bucket) >= limit {
		s.buckets[key] = bucket
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   bucket[0].Add(window),
		}
	}

	bucket = append(bucket, now)
	s.buckets[key] = bucket

	return Result{
		Allowed:   true,
		Remaining: limit - len(bucket),
		ResetAt:   now.Add(window),
	}
}

// Len reports the number of live buckets, for diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
