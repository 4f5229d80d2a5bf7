package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemorySessionCache implements SessionCache with ttlcache. This is
// the default backend for single-instance deployments.
type MemorySessionCache struct {
	cache *ttlcache.Cache[string, *VerifiedSession]
}

// NewMemorySessionCache creates an in-memory session cache with
// automatic expiry cleanup.
//
//nolint:ireturn
func NewMemorySessionCache(defaultTTL time.Duration) SessionCache {
	c := ttlcache.New(
		ttlcache.WithTTL[string, *VerifiedSession](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, *VerifiedSession](),
	)
	go c.Start()

	return &MemorySessionCache{cache: c}
}

// Get implements SessionCache.Get.
func (m *MemorySessionCache) Get(_ context.Context, token string) (*VerifiedSession, bool) {
	item := m.cache.Get(HashToken(token))
	if item == nil {
		return nil, false
	}
	session := item.Value()
	if time.Now().After(session.ExpiresAt) {
		m.cache.Delete(HashToken(token))
		return nil, false
	}
	return session, true
}

// Set implements SessionCache.Set.
func (m *MemorySessionCache) Set(_ context.Context, token string, session *VerifiedSession, ttl time.Duration) error {
	m.cache.Set(HashToken(token), session, ttl)
	return nil
}

// Delete implements SessionCache.Delete.
func (m *MemorySessionCache) Delete(_ context.Context, token string) error {
	m.cache.Delete(HashToken(token))
	return nil
}

// Close stops the cleanup goroutine.
func (m *MemorySessionCache) Close() error {
	m.cache.Stop()
	return nil
}
