package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-staffhub/internal/auth"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps web-surface sessions server-side in Redis, keyed by an opaque
// cookie value. The session carries the Principal as plain strings; there is
// no signature and no JWT here, and the idle timeout is the only expiry.
// This is a separate trust boundary from the bearer-token API.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl}
}

type sessionData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Create opens a session for the principal and returns the opaque id for
// the cookie.
func (s *Store) Create(ctx context.Context, p auth.Principal) (string, error) {
	sid := uuid.NewString()

	payload, err := json.Marshal(sessionData{
		UserID:   p.ID,
		Username: p.Username,
		Role:     p.Role,
	})
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, keyPrefix+sid, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Get resolves a session id and refreshes the idle timeout on hit.
func (s *Store) Get(ctx context.Context, sid string) (auth.Principal, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return auth.Principal{}, ErrSessionNotFound
	}
	if err != nil {
		return auth.Principal{}, err
	}

	var data sessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return auth.Principal{}, err
	}

	// Sliding expiry: every touch extends the idle window.
	if err := s.rdb.Expire(ctx, keyPrefix+sid, s.ttl).Err(); err != nil {
		return auth.Principal{}, err
	}

	return auth.Principal{
		ID:       data.UserID,
		Username: data.Username,
		Role:     data.Role,
	}, nil
}

func (s *Store) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}
