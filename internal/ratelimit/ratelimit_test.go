package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with a controllable clock.
func newTestStore(start time.Time) (*Store, *time.Time) {
	now := start
	s := NewStore()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestCheckAndConsume_ColdKeyAlwaysAllowed(t *testing.T) {
	s, _ := newTestStore(time.Unix(1700000000, 0))

	res := s.CheckAndConsume("lead-capture:203.0.113.7", time.Minute, 1)

	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestCheckAndConsume_LimitWithinWindow(t *testing.T) {
	s, now := newTestStore(time.Unix(1700000000, 0))

	const limit = 6
	window := time.Minute

	for i := 0; i < limit; i++ {
		res := s.CheckAndConsume("create-company:198.51.100.2", window, limit)
		require.True(t, res.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, limit-(i+1), res.Remaining)
		*now = now.Add(time.Second)
	}

	res := s.CheckAndConsume("create-company:198.51.100.2", window, limit)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestCheckAndConsume_ResetAtPointsAtOldestPlusWindow(t *testing.T) {
	start := time.Unix(1700000000, 0)
	s, now := newTestStore(start)

	window := 30 * time.Second
	s.CheckAndConsume("k", window, 1)

	*now = now.Add(5 * time.Second)
	res := s.CheckAndConsume("k", window, 1)

	require.False(t, res.Allowed)
	assert.Equal(t, start.Add(window), res.ResetAt)
}

func TestCheckAndConsume_WindowSlides(t *testing.T) {
	s, now := newTestStore(time.Unix(1700000000, 0))

	window := 10 * time.Second
	require.True(t, s.CheckAndConsume("k", window, 1).Allowed)

	rejected := s.CheckAndConsume("k", window, 1)
	require.False(t, rejected.Allowed)

	// Step past ResetAt; the window has slid and the key has room.
	*now = rejected.ResetAt.Add(time.Millisecond)
	res := s.CheckAndConsume("k", window, 1)
	assert.True(t, res.Allowed)
}

func TestCheckAndConsume_KeysAreIndependent(t *testing.T) {
	s, _ := newTestStore(time.Unix(1700000000, 0))

	window := time.Minute
	require.True(t, s.CheckAndConsume("audit-generate:a", window, 1).Allowed)
	require.False(t, s.CheckAndConsume("audit-generate:a", window, 1).Allowed)

	// Same scope, different client: unaffected.
	assert.True(t, s.CheckAndConsume("audit-generate:b", window, 1).Allowed)
	// Same client, different scope: unaffected.
	assert.True(t, s.CheckAndConsume("website-scrape:a", window, 1).Allowed)
}

func TestCheckAndConsume_PrunesOnAccess(t *testing.T) {
	s, now := newTestStore(time.Unix(1700000000, 0))

	window := time.Second
	const limit = 60
	for i := 0; i < limit; i++ {
		require.True(t, s.CheckAndConsume("k", window, limit).Allowed)
	}

	*now = now.Add(2 * time.Second)
	res := s.CheckAndConsume("k", window, limit)
	assert.True(t, res.Allowed)
	assert.Equal(t, limit-1, res.Remaining, "stale timestamps should have been pruned")
}

func TestCheckAndConsume_Concurrent(t *testing.T) {
	s := NewStore()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				s.CheckAndConsume(fmt.Sprintf("scope:%d", n%2), time.Minute, 50)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.Equal(t, 2, s.Len())
}
