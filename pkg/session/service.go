package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

// Service binds a flow engine to managed session storage. It owns session
// IDs and the load-advance-save cycle; transports stay thin on top of it.
type Service struct {
	engine ports.FlowEngine
	mgr    *Manager
}

// NewService creates a session service.
func NewService(engine ports.FlowEngine, mgr *Manager) *Service {
	return &Service{engine: engine, mgr: mgr}
}

// Manager exposes the underlying session manager.
func (s *Service) Manager() *Manager { return s.mgr }

// Start initializes a new session and persists its state. The generated
// session ID is returned alongside the first execution result.
func (s *Service) Start(ctx context.Context) (string, *domain.ExecutionResult, error) {
	sessionID := uuid.NewString()

	var result *domain.ExecutionResult
	err := s.mgr.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		result, err = s.engine.Initialize(ctx)
		if err != nil {
			return err
		}
		return s.mgr.Store().Save(ctx, sessionID, result.State)
	})
	if err != nil {
		return "", nil, fmt.Errorf("starting session: %w", err)
	}
	return sessionID, result, nil
}

// Respond advances a session with one user answer under the session lock.
// A fatal traversal error still persists the errored state before the error
// is returned, so the session remains inspectable.
func (s *Service) Respond(ctx context.Context, sessionID, answer string) (*domain.ExecutionResult, error) {
	var result *domain.ExecutionResult
	err := s.mgr.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := s.mgr.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		result, err = s.engine.ProcessUserResponse(ctx, state, answer)
		if result != nil && result.State != nil {
			if saveErr := s.mgr.Store().Save(ctx, sessionID, result.State); saveErr != nil && err == nil {
				return saveErr
			}
		}
		return err
	})
	return result, err
}

// Get loads a session and re-renders its pending question.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.ExecutionResult, error) {
	var result *domain.ExecutionResult
	err := s.mgr.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := s.mgr.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		result, err = s.engine.Resume(ctx, state)
		return err
	})
	return result, err
}

// Reset discards a session's progress and restarts it under the same ID.
func (s *Service) Reset(ctx context.Context, sessionID string) (*domain.ExecutionResult, error) {
	var result *domain.ExecutionResult
	err := s.mgr.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := s.mgr.Store().Load(ctx, sessionID); err != nil {
			return err
		}
		var err error
		result, err = s.engine.Initialize(ctx)
		if err != nil {
			return err
		}
		return s.mgr.Store().Save(ctx, sessionID, result.State)
	})
	return result, err
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	return s.mgr.Delete(ctx, sessionID)
}

// List returns all stored session IDs.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.mgr.List(ctx)
}
