package auth

import (
	"context"
	"time"
)

// SessionStore tracks server-side session lifetime so issued tokens can be
// revoked before they expire. Sessions carry a TTL matching the refresh
// token lifetime.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Active(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// SessionNotifier observes session acquisition and loss. The gating flow
// subscribes through this seam.
type SessionNotifier interface {
	SessionStarted(userID int64)
	SessionEnded(userID int64)
}
