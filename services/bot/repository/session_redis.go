package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kyudan/motemovil/internal/pkg/database"
	"github.com/kyudan/motemovil/internal/pkg/models"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore backs the session store with Redis so multiple bot
// instances can share in-flight conversations. Sessions expire after the TTL
// to reclaim abandoned flows.
type RedisSessionStore struct {
	client *database.RedisClient
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *database.RedisClient, ttl time.Duration) *RedisSessionStore {
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

// Get returns the session for a user, or nil when none is in flight.
func (s *RedisSessionStore) Get(ctx context.Context, userID int64) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &session, nil
}

// Put stores or replaces the session for a user
func (s *RedisSessionStore) Put(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.UserID), raw, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Delete removes the session for a user
func (s *RedisSessionStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Delete(ctx, sessionKey(userID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
