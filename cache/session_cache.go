// Package cache holds the session verification cache: a short-lived
// record of which access tokens have already been verified against
// the identity provider, so authed routes do not call out on every
// request.
package cache

import (
	"context"
	"time"
)

// VerifiedSession is what the session middleware caches for a
// verified access token.
type VerifiedSession struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionCache stores verified sessions keyed by hashed access token.
type SessionCache interface {
	Get(ctx context.Context, token string) (*VerifiedSession, bool)
	Set(ctx context.Context, token string, session *VerifiedSession, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
	Close() error
}
