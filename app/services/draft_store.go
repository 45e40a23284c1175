package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voxlane/console/models"
)

// ErrDraftMissing is returned when no draft record exists for an ID.
var ErrDraftMissing = errors.New("draft record not found")

// DraftStore persists wizard drafts between steps. Drafts are scoped to a
// session so an operator's half-built campaign survives page reloads but not
// logout.
type DraftStore interface {
	Save(ctx context.Context, sessionID string, draft *models.WizardDraft) error
	Get(ctx context.Context, sessionID, draftID string) (*models.WizardDraft, error)
	Delete(ctx context.Context, sessionID, draftID string) error
}

const draftKeyPrefix = "console:draft:"

// RedisDraftStore keeps wizard drafts in redis.
type RedisDraftStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisDraftStore creates a redis-backed draft store.
func NewRedisDraftStore(client redis.UniversalClient, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(sessionID, draftID string) string {
	return draftKeyPrefix + sessionID + ":" + draftID
}

func (s *RedisDraftStore) Save(ctx context.Context, sessionID string, draft *models.WizardDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.client.Set(ctx, draftKey(sessionID, draft.ID), payload, s.ttl).Err()
}

func (s *RedisDraftStore) Get(ctx context.Context, sessionID, draftID string) (*models.WizardDraft, error) {
	raw, err := s.client.Get(ctx, draftKey(sessionID, draftID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftMissing
	}
	if err != nil {
		return nil, err
	}
	var draft models.WizardDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, sessionID, draftID string) error {
	return s.client.Del(ctx, draftKey(sessionID, draftID)).Err()
}
