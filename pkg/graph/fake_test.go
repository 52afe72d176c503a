package graph

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"
)

type fakeClient struct {
	completion    string
	completionErr error
	formatted     map[string]string
	formatErr     error
	loadErr       error

	completionCalls atomic.Int32
	formatCalls     atomic.Int32
}

func (f *fakeClient) GenerateCompletion(context.Context, string, ...ai.GenerateOption) (string, error) {
	f.completionCalls.Add(1)
	if f.completionErr != nil {
		return "", f.completionErr
	}
	return f.completion, nil
}

func (f *fakeClient) GenerateCompletionWithFormat(_ context.Context, name, _, _ string, out any, _ ...ai.GenerateOption) error {
	f.formatCalls.Add(1)
	if f.formatErr != nil {
		return f.formatErr
	}
	raw, ok := f.formatted[name]
	if !ok {
		return errors.New("no canned response for " + name)
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeClient) GenerateChat(context.Context, []ai.ChatMessage, ...ai.GenerateOption) (string, error) {
	return "", nil
}

func (f *fakeClient) LoadModel(context.Context, ...ai.GenerateOption) error {
	return f.loadErr
}

func (f *fakeClient) ResetMetrics()               {}
func (f *fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func readySession(f *fakeClient) *ai.Session {
	s := ai.NewSession(f)
	if err := s.EnsureReady(context.Background()); err != nil {
		panic(err)
	}
	return s
}
