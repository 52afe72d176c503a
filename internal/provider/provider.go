package provider

import (
	"github.com/OFFIS-RIT/nodelink/internal/config"
	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	oai "github.com/OFFIS-RIT/nodelink/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/nodelink/pkg/ai/openai"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
)

// AIClientFromEnv builds the model client selected by AI_ADAPTER. It
// returns nil when the adapter is "none" or unset, or when the client cannot
// be created.
func AIClientFromEnv() ai.GraphAIClient {
	adapter := util.GetEnvString("AI_ADAPTER", "none")
	parallel := int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4))

	switch adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			DescribeModel: util.GetEnv("AI_CHAT_DESCRIBE_MODEL"),
			ExtractModel:  util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: parallel,
		})
		if err != nil {
			logger.Error("Failed to create Ollama client", "err", err)
			return nil
		}
		return client
	case "openai":
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			DescribeModel: util.GetEnv("AI_CHAT_DESCRIBE_MODEL"),
			ExtractModel:  util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: parallel,
		})
	case "none", "":
		return nil
	default:
		logger.Warn("Unknown AI adapter, model features disabled", "adapter", adapter)
		return nil
	}
}

// Adapter creates a text-to-graph adapter from cfg. client may be nil, which
// disables every model feature.
func Adapter(cfg *config.Config, client ai.GraphAIClient) *graph.Adapter {
	var session *ai.Session
	if client != nil {
		session = ai.NewSession(client)
	}

	return graph.NewAdapter(graph.NewAdapterParams{
		Session:            session,
		Batch:              cfg.Batch,
		ParallelAiRequests: util.GetEnvInt("AI_PARALLEL_REQ", 4),
		MaxRetries:         util.GetEnvInt("AI_MAX_RETRIES", 3),
		MaxModelNodes:      cfg.Adapter.MaxModelNodes,
		MaxKeywordNodes:    cfg.Adapter.MaxKeywordNodes,
	})
}
