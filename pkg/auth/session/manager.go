package session

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rentalhq/rental-backend/pkg/redis"
)

// Manager tracks live sessions in redis, keyed by the token jti. A
// token whose jti is no longer present has been logged out.
type Manager struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewManager(rdb redis.Cmdable, ttl time.Duration) (*Manager, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{rdb: rdb, ttl: ttl}, nil
}

func (m *Manager) key(jti string) string {
	return redis.SessionPrefix + jti
}

func (m *Manager) Register(ctx context.Context, jti, userID string) error {
	if err := m.rdb.Set(ctx, m.key(jti), userID, m.ttl).Err(); err != nil {
		return fmt.Errorf("registering session: %w", err)
	}
	return nil
}

// IsActive reports whether the session behind jti is still live.
func (m *Manager) IsActive(ctx context.Context, jti string) (bool, error) {
	err := m.rdb.Get(ctx, m.key(jti)).Err()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking session: %w", err)
	}
	return true, nil
}

func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if err := m.rdb.Del(ctx, m.key(jti)).Err(); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}
