package graph

import (
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/nlp"
)

// Adapter turns text into graphs. It runs the NLP pipeline, optionally
// refines or replaces its output with a language model, and remembers the
// last graph it produced successfully so failures can degrade to it.
//
// An Adapter should be created using NewAdapter and is safe for concurrent
// use.
type Adapter struct {
	processor          *nlp.Processor
	session            *ai.Session
	extractor          *Extractor
	batchConfig        BatchConfig
	parallelAiRequests int
	maxRetries         int
	maxKeywordNodes    int

	mu       sync.RWMutex
	lastGood *common.Graph
}

// NewAdapterParams defines the configuration parameters for creating a new
// Adapter.
//
// Session may be nil, in which case every model step is skipped.
// ParallelAiRequests controls how many refinement batches run concurrently.
// MaxRetries controls how often a failing model call is repeated.
type NewAdapterParams struct {
	Session            *ai.Session
	Batch              BatchConfig
	ParallelAiRequests int
	MaxRetries         int
	MaxModelNodes      int
	MaxKeywordNodes    int
}

// NewAdapter creates and returns a new Adapter configured with the provided
// parameters.
//
// Example:
//
//	adapter := graph.NewAdapter(graph.NewAdapterParams{
//		Session:            ai.NewSession(client),
//		ParallelAiRequests: 4,
//	})
//	res := adapter.Convert(ctx, graph.Request{Text: text, Mode: graph.ModeEnhanced})
func NewAdapter(params NewAdapterParams) *Adapter {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	parallel := params.ParallelAiRequests
	if parallel <= 0 {
		parallel = 1
	}

	var client ai.GraphAIClient
	if params.Session != nil {
		client = params.Session.Client()
	}

	return &Adapter{
		processor:          nlp.NewProcessor(),
		session:            params.Session,
		extractor:          NewExtractor(client, params.MaxModelNodes),
		batchConfig:        params.Batch.withDefaults(),
		parallelAiRequests: parallel,
		maxRetries:         maxRetries,
		maxKeywordNodes:    params.MaxKeywordNodes,
	}
}

// Session returns the model session, which may be nil.
func (c *Adapter) Session() *ai.Session {
	return c.session
}

// Processor returns the NLP processor used by the adapter.
func (c *Adapter) Processor() *nlp.Processor {
	return c.processor
}

// BatchConfig returns the batch sizes used by Enhance.
func (c *Adapter) BatchConfig() BatchConfig {
	return c.batchConfig
}

// LastGood returns a copy of the last successfully produced graph.
func (c *Adapter) LastGood() (common.Graph, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastGood == nil {
		return common.Graph{}, false
	}
	return c.lastGood.Clone(), true
}

func (c *Adapter) remember(g common.Graph) {
	if g.IsEmpty() {
		return
	}
	clone := g.Clone()
	c.mu.Lock()
	c.lastGood = &clone
	c.mu.Unlock()
}
