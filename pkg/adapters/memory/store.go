// Package memory provides an in-process StateStore for tests, CLI runs and
// single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

// Store keeps session state in a map. Snapshots are deep-copied on both
// Save and Load so callers never share mutable state with the store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.FlowState
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.FlowState)}
}

// Save persists a deep copy of the state.
func (s *Store) Save(_ context.Context, sessionID string, state *domain.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = state.Clone()
	return nil
}

// Load returns a deep copy of the stored state.
func (s *Store) Load(_ context.Context, sessionID string) (*domain.FlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// List returns all stored session IDs.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

var _ ports.StateStore = (*Store)(nil)
