package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"

	"github.com/ollama/ollama/api"
)

const defaultContextWindow = 4096

// chat runs a non-streaming chat request under the request semaphore and
// records its metrics.
func (c *GraphOllamaClient) chat(ctx context.Context, req *api.ChatRequest, promptText string) (string, error) {
	stream := false
	req.Stream = &stream

	tokens := 200 + ai.EstimateTokens(promptText)
	if tokens > defaultContextWindow {
		req.Options["num_ctx"] = tokens
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	}); err != nil {
		return "", err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		Requests:     1,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	})

	return final.Message.Content, nil
}

func newRequest(options ai.GenerateOptions, msgs []api.Message) *api.ChatRequest {
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if options.Thinking != "" {
		req.Think = &api.ThinkValue{Value: options.Thinking}
	}
	return req
}

func systemMessages(prompts []string) []api.Message {
	msgs := make([]api.Message, 0, len(prompts))
	for _, sys := range prompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	return msgs
}

// GenerateCompletion sends a single-turn prompt and returns the reply.
func (c *GraphOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.describeModel,
		Temperature: 0.3,
	}, opts...)

	msgs := append(systemMessages(options.SystemPrompts), api.Message{Role: "user", Content: prompt})
	return c.chat(ctx, newRequest(options, msgs), prompt)
}

// GenerateCompletionWithFormat constrains the reply to the JSON schema of
// out and unmarshals it into out.
func (c *GraphOllamaClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	if out == nil {
		return errors.New("out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("out must be a non-nil pointer")
	}

	formatBytes, err := json.Marshal(ai.GenerateSchema(out))
	if err != nil {
		return err
	}

	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.extractModel,
		Temperature: 0.1,
	}, opts...)

	msgs := append(systemMessages(options.SystemPrompts), api.Message{Role: "user", Content: prompt})
	req := newRequest(options, msgs)
	req.Format = json.RawMessage(formatBytes)

	content, err := c.chat(ctx, req, prompt)
	if err != nil {
		return err
	}
	if perr := ai.ParseModelJSON(content, out); perr != nil {
		return perr
	}
	return nil
}

// GenerateChat sends a multi-turn conversation and returns the reply.
func (c *GraphOllamaClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.describeModel,
		Temperature: 0.2,
	}, opts...)

	msgs := systemMessages(options.SystemPrompts)
	var text []byte
	for _, m := range messages {
		role := m.Role
		if role == "" {
			role = "user"
		}
		msgs = append(msgs, api.Message{Role: role, Content: m.Message})
		text = append(text, m.Message...)
	}

	return c.chat(ctx, newRequest(options, msgs), string(text))
}

// LoadModel preloads the model so the first real request is fast.
func (c *GraphOllamaClient) LoadModel(ctx context.Context, opts ...ai.GenerateOption) error {
	options := ai.ApplyOptions(ai.GenerateOptions{Model: c.describeModel}, opts...)

	req := &api.ChatRequest{Model: options.Model}
	return c.Client.Chat(ctx, req, func(api.ChatResponse) error { return nil })
}
