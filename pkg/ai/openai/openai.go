package openai

import (
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// GraphOpenAIClient implements ai.GraphAIClient against any OpenAI
// compatible chat completions endpoint.
type GraphOpenAIClient struct {
	describeModel string
	extractModel  string
	chatURL       string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewGraphOpenAIClientParams configures a GraphOpenAIClient. An empty
// ChatURL targets the official API.
type NewGraphOpenAIClientParams struct {
	DescribeModel string
	ExtractModel  string

	ChatURL string
	ChatKey string

	MaxConcurrentRequests int64
}

// NewGraphOpenAIClient creates a client for the configured endpoint.
//
// Example:
//
//	client := openai.NewGraphOpenAIClient(openai.NewGraphOpenAIClientParams{
//		DescribeModel: "gpt-4o-mini",
//		ChatKey:       os.Getenv("AI_CHAT_KEY"),
//	})
func NewGraphOpenAIClient(params NewGraphOpenAIClientParams) *GraphOpenAIClient {
	options := []option.RequestOption{option.WithAPIKey(params.ChatKey)}
	if params.ChatURL != "" {
		options = append(options, option.WithBaseURL(params.ChatURL))
	}
	client := openai.NewClient(options...)

	limit := params.MaxConcurrentRequests
	if limit <= 0 {
		limit = 1
	}
	extract := params.ExtractModel
	if extract == "" {
		extract = params.DescribeModel
	}

	return &GraphOpenAIClient{
		describeModel: params.DescribeModel,
		extractModel:  extract,
		chatURL:       params.ChatURL,
		reqLock:       semaphore.NewWeighted(limit),
		ChatClient:    &client,
	}
}

// ResetMetrics clears the accumulated token and timing metrics.
func (c *GraphOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the metrics accumulated since the last reset.
func (c *GraphOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}

func (c *GraphOpenAIClient) modifyMetrics(m ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.Add(m)
}
