package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/utils"
)

// ErrSessionMissing is returned when no session record exists for an ID.
var ErrSessionMissing = errors.New("session record not found")

// SessionStore is the single read/write surface for operator sessions. The
// platform bearer token lives only here; purging a session is the one way it
// is destroyed.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Purge(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "console:session:"

// RedisSessionStore keeps session records in redis with a sliding TTL.
type RedisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisSessionStore creates a redis-backed session store.
func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, s.ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionMissing
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	// Sliding expiry: touching the session keeps it alive.
	s.client.Expire(ctx, sessionKeyPrefix+sessionID, s.ttl)
	return &session, nil
}

func (s *RedisSessionStore) Purge(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// SessionAccessor adapts a SessionStore to the platform client, resolving the
// session named by the request context. A 401 from the platform calls Purge
// here, which removes the record for every future request in one step.
type SessionAccessor struct {
	Store SessionStore
}

func (a *SessionAccessor) Token(ctx context.Context) (string, error) {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return "", ErrSessionMissing
	}
	session, err := a.Store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func (a *SessionAccessor) Purge(ctx context.Context) error {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return nil
	}
	return a.Store.Purge(ctx, sessionID)
}
