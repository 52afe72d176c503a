package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const defaultMaxModelNodes = 25

// ErrNoNodes is returned when the model produced a graph without nodes.
var ErrNoNodes = errors.New("model returned no nodes")

type extractNode struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Category    string   `json:"category"`
	Confidence  *float64 `json:"confidence"`
	Description string   `json:"description"`
}

type extractLink struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type"`
	Animated bool   `json:"animated"`
}

type extractResponse struct {
	Nodes []extractNode `json:"nodes"`
	Links []extractLink `json:"links"`
}

// Extractor builds a graph directly from text with a language model.
type Extractor struct {
	client   ai.GraphAIClient
	maxNodes int
}

// NewExtractor creates an Extractor. maxNodes <= 0 defaults to 25.
func NewExtractor(client ai.GraphAIClient, maxNodes int) *Extractor {
	if maxNodes <= 0 {
		maxNodes = defaultMaxModelNodes
	}
	return &Extractor{client: client, maxNodes: maxNodes}
}

// ExtractGraph prompts the model for a node/link JSON document and converts
// it into a graph. Nodes are marked as model output with the category and
// confidence the model assigned. Links that reference unknown nodes, either
// by id or by label, are dropped.
func (e *Extractor) ExtractGraph(ctx context.Context, text string) (common.Graph, error) {
	if e.client == nil {
		return common.Graph{}, ai.ErrNoClient
	}

	prompt := fmt.Sprintf(ai.ExtractGraphPrompt, text, e.maxNodes)
	raw, err := e.client.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.1))
	if err != nil {
		return common.Graph{}, fmt.Errorf("extract graph: %w", err)
	}

	var res extractResponse
	if perr := ai.ParseModelJSON(raw, &res); perr != nil {
		return common.Graph{}, perr
	}
	g, err := graphFromExtraction(res, e.maxNodes)
	if err != nil {
		return common.Graph{}, err
	}

	logger.Debug("Extracted graph with model", "nodes", len(g.Nodes), "links", len(g.Links))
	return g, nil
}

func graphFromExtraction(res extractResponse, maxNodes int) (common.Graph, error) {
	g := common.Graph{Nodes: []common.Node{}, Links: []common.Link{}}
	ids := idSet{}
	// model ids and lowercase labels both resolve to the final id
	resolve := make(map[string]string)

	for _, n := range res.Nodes {
		if len(g.Nodes) >= maxNodes {
			break
		}
		label := strings.TrimSpace(n.Label)
		if label == "" {
			label = strings.TrimSpace(n.ID)
		}
		if label == "" {
			continue
		}
		if _, dup := resolve[strings.ToLower(label)]; dup {
			continue
		}

		base := Slug(n.ID)
		if strings.TrimSpace(n.ID) == "" {
			base = Slug(label)
		}
		if base == "node" {
			generated, err := gonanoid.New()
			if err != nil {
				return common.Graph{}, fmt.Errorf("failed to generate ID for node: %w", err)
			}
			base = strings.ToLower(generated)
		}

		node := NewNode(ids.next(base), label, n.Category, common.NodeSourceModel)
		node.Description = strings.TrimSpace(n.Description)
		category := node.Category
		confidence := 1.0
		if n.Confidence != nil {
			confidence = max(0, min(1, *n.Confidence))
		}
		node.AICategory = &category
		node.AIConfidence = &confidence

		if _, taken := resolve[n.ID]; n.ID != "" && !taken {
			resolve[n.ID] = node.ID
		}
		resolve[strings.ToLower(label)] = node.ID
		g.Nodes = append(g.Nodes, node)
	}
	if len(g.Nodes) == 0 {
		return common.Graph{}, ErrNoNodes
	}

	lookup := func(ref string) (string, bool) {
		if id, ok := resolve[ref]; ok {
			return id, true
		}
		id, ok := resolve[strings.ToLower(strings.TrimSpace(ref))]
		return id, ok
	}
	seen := make(map[string]bool)
	for _, l := range res.Links {
		src, ok := lookup(l.Source)
		if !ok {
			continue
		}
		tgt, ok := lookup(l.Target)
		if !ok || src == tgt {
			continue
		}
		key := src + "\x00" + tgt
		if seen[key] {
			continue
		}
		seen[key] = true
		g.Links = append(g.Links, common.Link{
			Source:   src,
			Target:   tgt,
			Type:     strings.TrimSpace(l.Type),
			Animated: l.Animated || causalTypes[l.Type],
		})
	}
	return g, nil
}
