// Package redis provides the redis-backed session cache for
// deployments where verified sessions should survive restarts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halcyonworks/mission-control/cache"
)

// SessionCache implements cache.SessionCache on redis.
type SessionCache struct {
	client *redis.Client
	prefix string
}

// NewSessionCache creates a redis session cache. prefix namespaces
// the keys, e.g. "mc".
func NewSessionCache(client *redis.Client, prefix string) *SessionCache {
	return &SessionCache{client: client, prefix: prefix}
}

func (s *SessionCache) key(token string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, cache.HashToken(token))
}

// Get implements cache.SessionCache.Get.
func (s *SessionCache) Get(ctx context.Context, token string) (*cache.VerifiedSession, bool) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		return nil, false
	}

	var session cache.VerifiedSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, false
	}
	return &session, true
}

// Set implements cache.SessionCache.Set.
func (s *SessionCache) Set(ctx context.Context, token string, session *cache.VerifiedSession, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session in redis: %w", err)
	}
	return nil
}

// Delete implements cache.SessionCache.Delete.
func (s *SessionCache) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// Close closes the underlying client.
func (s *SessionCache) Close() error {
	return s.client.Close()
}
