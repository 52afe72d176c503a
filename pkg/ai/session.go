package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// SessionState is the lifecycle state of a model session.
type SessionState string

const (
	SessionUninitialized SessionState = "uninitialized"
	SessionInitializing  SessionState = "initializing"
	SessionReady         SessionState = "ready"
	SessionFailed        SessionState = "failed"
)

// ErrNoClient is returned by EnsureReady when the session has no backend.
var ErrNoClient = errors.New("no model client configured")

// Session owns the readiness of a model client. The first EnsureReady call
// loads the model; concurrent callers wait for that same load instead of
// starting their own. A failed load is retried on the next EnsureReady.
type Session struct {
	client GraphAIClient
	opts   []GenerateOption

	group singleflight.Group

	mu      sync.RWMutex
	state   SessionState
	lastErr error
}

// NewSession creates a session for client. client may be nil, in which case
// the session never becomes ready.
func NewSession(client GraphAIClient, opts ...GenerateOption) *Session {
	return &Session{
		client: client,
		opts:   opts,
		state:  SessionUninitialized,
	}
}

// Client returns the wrapped client.
func (s *Session) Client() GraphAIClient {
	return s.client
}

// EnsureReady loads the model if it is not loaded yet. It is safe to call
// concurrently and returns immediately once the session is ready.
func (s *Session) EnsureReady(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}
	if s.State() == SessionReady {
		return nil
	}

	ch := s.group.DoChan("init", func() (any, error) {
		if s.State() == SessionReady {
			return nil, nil
		}
		s.setState(SessionInitializing, nil)

		// the load outlives a single caller's cancellation
		err := s.client.LoadModel(context.WithoutCancel(ctx), s.opts...)
		if err != nil {
			logger.Warn("Model session initialization failed", "err", err)
			s.setState(SessionFailed, err)
			return nil, fmt.Errorf("load model: %w", err)
		}

		logger.Debug("Model session ready")
		s.setState(SessionReady, nil)
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// Ready reports whether the session is ready without triggering a load.
func (s *Session) Ready() bool {
	return s.State() == SessionReady
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error of the last failed load.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset returns the session to the uninitialized state.
func (s *Session) Reset() {
	s.setState(SessionUninitialized, nil)
}

func (s *Session) setState(state SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastErr = err
}
