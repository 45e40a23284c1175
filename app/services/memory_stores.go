package services

import (
	"context"
	"sync"

	"github.com/voxlane/console/models"
)

// MemorySessionStore is an in-process SessionStore for tests and single-node
// development runs.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionMissing
	}
	return &session, nil
}

func (s *MemorySessionStore) Purge(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// MemoryDraftStore is an in-process DraftStore for tests and single-node
// development runs.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.WizardDraft
}

// NewMemoryDraftStore creates an empty in-memory draft store.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]models.WizardDraft)}
}

func (s *MemoryDraftStore) Save(_ context.Context, sessionID string, draft *models.WizardDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID+":"+draft.ID] = *draft
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, sessionID, draftID string) (*models.WizardDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID+":"+draftID]
	if !ok {
		return nil, ErrDraftMissing
	}
	return &draft, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, sessionID, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID+":"+draftID)
	return nil
}
