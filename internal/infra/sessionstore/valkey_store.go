package sessionstore

import (
	"context"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/chore-planner/internal/domain/auth"
)

// ValkeyStore keeps session records in a Valkey-compatible database so
// revocation survives process restarts.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "session"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Put records a session with its TTL.
func (s *ValkeyStore) Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	cmd := s.client.B().Set().
		Key(s.key(sessionID)).
		Value(strconv.FormatInt(userID, 10)).
		Ex(ttl).
		Build()
	return s.client.Do(ctx, cmd).Error()
}

// Active reports whether the session still exists. A missing key is the
// expected revoked/expired branch, not an error.
func (s *ValkeyStore) Active(ctx context.Context, sessionID string) (bool, error) {
	cmd := s.client.B().Get().Key(s.key(sessionID)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session record.
func (s *ValkeyStore) Revoke(ctx context.Context, sessionID string) error {
	cmd := s.client.B().Del().Key(s.key(sessionID)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

var _ auth.SessionStore = (*ValkeyStore)(nil)
