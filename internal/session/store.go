// Package session implements the server-side half of the cookie
// credential adapter: a Redis-backed store mapping opaque session ids to
// the authenticated identity. The cookie carries only the random id;
// everything else lives in Redis under a TTL matching the original
// system's eight hour session lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/utils"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions in Redis under "<prefix>:<id>" keys.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewStore returns a session store with the given lifetime. The Redis
// client must be non-nil; callers that could not reach Redis should not
// register the session surface at all.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, prefix: "sess"}
}

func (s *Store) key(id string) string { return s.prefix + ":" + id }

// Create stores the identity under a fresh random id and returns the id
// for the cookie value.
func (s *Store) Create(ctx context.Context, ident auth.Identity) (string, error) {
	id, err := utils.RandomHex(32)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(ident)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.key(id), string(payload), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get resolves a session id back into the identity it was created with.
func (s *Store) Get(ctx context.Context, id string) (auth.Identity, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.Identity{}, ErrNotFound
	}
	if err != nil {
		return auth.Identity{}, err
	}
	var ident auth.Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		return auth.Identity{}, err
	}
	return ident, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
