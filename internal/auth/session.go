// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/scentpath/internal/config"
	"github.com/carterperez-dev/scentpath/internal/core"
)

const sessionKeyPrefix = "session:"

// SessionManager maps opaque random tokens to user IDs in Redis. Only the
// SHA-256 of a token is used as the key, so a storage dump alone cannot be
// replayed as a cookie.
type SessionManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionManager(
	client *redis.Client,
	cfg config.SessionConfig,
) *SessionManager {
	return &SessionManager{
		redis: client,
		ttl:   cfg.TTL,
	}
}

func (m *SessionManager) Create(
	ctx context.Context,
	userID string,
) (string, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	key := sessionKeyPrefix + core.HashToken(token)

	if err := m.redis.Set(ctx, key, userID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (m *SessionManager) Validate(
	ctx context.Context,
	token string,
) (string, error) {
	key := sessionKeyPrefix + core.HashToken(token)

	userID, err := m.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("validate session: %w", core.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("validate session: %w", err)
	}

	return userID, nil
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	key := sessionKeyPrefix + core.HashToken(token)

	if err := m.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

var _ SessionStore = (*SessionManager)(nil)
