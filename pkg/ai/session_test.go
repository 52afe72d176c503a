package ai

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClient struct {
	calls   atomic.Int32
	release chan struct{}
	fail    atomic.Int32
}

func (f *fakeClient) GenerateCompletion(context.Context, string, ...GenerateOption) (string, error) {
	return "", nil
}

func (f *fakeClient) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...GenerateOption) error {
	return nil
}

func (f *fakeClient) GenerateChat(context.Context, []ChatMessage, ...GenerateOption) (string, error) {
	return "", nil
}

func (f *fakeClient) LoadModel(ctx context.Context, opts ...GenerateOption) error {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.fail.Load() > 0 {
		f.fail.Add(-1)
		return errors.New("model not found")
	}
	return nil
}

func (f *fakeClient) ResetMetrics()            {}
func (f *fakeClient) GetMetrics() ModelMetrics { return ModelMetrics{} }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionConcurrentInitSharesLoad(t *testing.T) {
	client := &fakeClient{release: make(chan struct{})}
	s := NewSession(client)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.EnsureReady(context.Background())
		}()
	}

	waitFor(t, func() bool { return s.State() == SessionInitializing })
	close(client.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("EnsureReady() error = %v", err)
		}
	}
	if got := client.calls.Load(); got != 1 {
		t.Fatalf("LoadModel called %d times, want 1", got)
	}
	if !s.Ready() {
		t.Fatalf("session not ready: %s", s.State())
	}

	if err := s.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() on ready session error = %v", err)
	}
	if got := client.calls.Load(); got != 1 {
		t.Fatalf("ready session reloaded the model")
	}
}

func TestSessionRetriesAfterFailure(t *testing.T) {
	client := &fakeClient{}
	client.fail.Store(1)
	s := NewSession(client)

	if err := s.EnsureReady(context.Background()); err == nil {
		t.Fatalf("expected first load to fail")
	}
	if s.State() != SessionFailed || s.Err() == nil {
		t.Fatalf("expected failed state, got %s (%v)", s.State(), s.Err())
	}

	if err := s.EnsureReady(context.Background()); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if s.State() != SessionReady || s.Err() != nil {
		t.Fatalf("expected ready state after retry, got %s", s.State())
	}
	if got := client.calls.Load(); got != 2 {
		t.Fatalf("LoadModel called %d times, want 2", got)
	}
}

func TestSessionReset(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client)

	if err := s.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	s.Reset()
	if s.State() != SessionUninitialized {
		t.Fatalf("Reset() left state %s", s.State())
	}
	if err := s.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() after reset error = %v", err)
	}
	if got := client.calls.Load(); got != 2 {
		t.Fatalf("expected reload after reset, calls = %d", got)
	}
}

func TestSessionCallerCancellation(t *testing.T) {
	client := &fakeClient{release: make(chan struct{})}
	s := NewSession(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.EnsureReady(ctx) }()

	waitFor(t, func() bool { return s.State() == SessionInitializing })
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(client.release)
	waitFor(t, func() bool { return s.Ready() })
}

func TestSessionWithoutClient(t *testing.T) {
	s := NewSession(nil)
	if err := s.EnsureReady(context.Background()); !errors.Is(err, ErrNoClient) {
		t.Fatalf("expected ErrNoClient, got %v", err)
	}
	if s.Ready() {
		t.Fatalf("session without client reported ready")
	}
}
