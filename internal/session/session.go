// Package session owns the automation backend for the length of one run.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/platform"
)

// State is the lifecycle position of a Session.
type State int

const (
	NotStarted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "not_started"
	}
}

var (
	// ErrSessionClosed is returned when a stopped session is used or restarted.
	ErrSessionClosed = errors.New("session is closed")
	ErrNotRunning    = errors.New("session is not running")
)

// Session moves NotStarted -> Running -> Stopped, never backwards.
type Session struct {
	provider *platform.Provider
	logger   *zap.Logger

	mu    sync.Mutex
	state State
}

// New wraps provider. The backend is not contacted until Start.
func New(provider *platform.Provider, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{provider: provider, logger: logger}
}

// Start starts the backend. A failed start stops whatever the backend
// managed to launch and closes the session; there is no retry.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Running:
		return nil
	case Stopped:
		return ErrSessionClosed
	}

	s.logger.Info("starting automation backend (the first start can take a while)")
	if err := s.provider.Backend.Start(ctx); err != nil {
		s.state = Stopped
		if stopErr := s.provider.Backend.Stop(context.WithoutCancel(ctx)); stopErr != nil {
			s.logger.Warn("cleanup after failed start", zap.Error(stopErr))
		}
		return fmt.Errorf("start backend: %w", err)
	}
	s.state = Running
	return nil
}

// Stop stops the backend once. Later calls, and calls on a session that
// never started, are no-ops. Stop ignores cancellation of ctx so that
// teardown still runs after an interrupt.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	s.state = Stopped
	if prev != Running {
		return nil
	}
	s.logger.Info("stopping automation backend")
	if err := s.provider.Backend.Stop(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("stop backend: %w", err)
	}
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Provider returns the capabilities of a running session.
func (s *Session) Provider() (*platform.Provider, error) {
	switch s.State() {
	case Running:
		return s.provider, nil
	case Stopped:
		return nil, ErrSessionClosed
	default:
		return nil, ErrNotRunning
	}
}
