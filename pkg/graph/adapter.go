package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"github.com/OFFIS-RIT/nodelink/pkg/nlp"
)

// Mode selects how text is turned into a graph.
type Mode string

const (
	// ModeBasic uses the rule based NLP pipeline only.
	ModeBasic Mode = "basic"
	// ModeEnhanced refines the NLP output in batches, with the model when it
	// is available and with rules otherwise.
	ModeEnhanced Mode = "enhanced"
	// ModeModel asks the model for the whole graph.
	ModeModel Mode = "model"
)

// ParseMode parses a mode name. An empty name means ModeBasic.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeBasic, nil
	case ModeBasic, ModeEnhanced, ModeModel:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Request is the input of Convert. Keywords and Entities are extra terms
// that become nodes in addition to what the pipeline finds.
type Request struct {
	Text     string   `json:"text"`
	Mode     Mode     `json:"mode"`
	Keywords []string `json:"keywords,omitempty"`
	Entities []string `json:"entities,omitempty"`
}

// Result is the output of Convert.
type Result struct {
	Graph common.Graph `json:"graph"`
	// Mode is the mode that produced Graph, which differs from the
	// requested one after a fallback.
	Mode Mode `json:"mode"`
	// Fallback names the fallback used when every mode failed:
	// "last-known-good" or "empty".
	Fallback     string         `json:"fallback,omitempty"`
	Methods      []RefineMethod `json:"refinement_methods,omitempty"`
	DroppedLinks int            `json:"dropped_links"`
}

var errEmptyGraph = errors.New("no nodes found")

// Convert turns req into a graph. It never fails: a failing mode degrades
// from model to enhanced to basic, then to the last graph produced
// successfully and finally to an empty graph. Successful non-empty results
// become the new last known good graph.
//
// Links with unknown endpoints are removed; node positions are unassigned.
func (c *Adapter) Convert(ctx context.Context, req Request) Result {
	mode := req.Mode
	if mode == "" {
		mode = ModeBasic
	}

	res, err := c.convert(ctx, req, mode)
	if err == nil {
		c.remember(res.Graph)
		return res
	}

	logger.Warn("Graph conversion failed, using fallback", "mode", mode, "err", err)
	if g, ok := c.LastGood(); ok {
		return Result{Graph: g, Mode: mode, Fallback: "last-known-good"}
	}
	return Result{
		Graph:    common.Graph{Nodes: []common.Node{}, Links: []common.Link{}},
		Mode:     mode,
		Fallback: "empty",
	}
}

func (c *Adapter) convert(ctx context.Context, req Request, mode Mode) (Result, error) {
	switch mode {
	case ModeModel:
		g, err := c.extract(ctx, req.Text)
		if err == nil {
			g = withHints(g, req)
			clean, dropped := g.DropDanglingLinks()
			return Result{Graph: clean, Mode: ModeModel, DroppedLinks: dropped}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		logger.Warn("Model extraction failed, falling back to enhanced", "err", err)
		return c.convert(ctx, req, ModeEnhanced)

	case ModeEnhanced:
		analysis, err := c.analyze(req.Text)
		if err != nil {
			return c.convert(ctx, req, ModeBasic)
		}
		enhanced := c.Enhance(ctx, analysis)
		res, err := c.toResult(enhanced.Analysis, req, ModeEnhanced)
		if err != nil {
			logger.Warn("Enhanced conversion failed, falling back to basic", "err", err)
			return c.convert(ctx, req, ModeBasic)
		}
		res.Methods = enhanced.Methods
		return res, nil

	case ModeBasic:
		analysis, err := c.analyze(req.Text)
		if err != nil && !hasHints(req) {
			return Result{}, err
		}
		return c.toResult(analysis, req, ModeBasic)

	default:
		return Result{}, fmt.Errorf("unknown mode %q", mode)
	}
}

func (c *Adapter) extract(ctx context.Context, text string) (common.Graph, error) {
	if err := nlp.ValidateText(text); err != nil {
		return common.Graph{}, err
	}
	if c.session == nil {
		return common.Graph{}, errors.New("no model session")
	}
	if err := c.session.EnsureReady(ctx); err != nil {
		return common.Graph{}, err
	}
	return util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (common.Graph, error) {
		return c.extractor.ExtractGraph(ctx, text)
	})
}

func (c *Adapter) analyze(text string) (*common.Analysis, error) {
	return c.processor.Process(text, nlp.DefaultOptions())
}

func (c *Adapter) toResult(analysis *common.Analysis, req Request, mode Mode) (Result, error) {
	g := FromAnalysis(analysis, ConvertOptions{MaxKeywordNodes: c.maxKeywordNodes})
	g = withHints(g, req)
	if g.IsEmpty() {
		return Result{}, errEmptyGraph
	}
	clean, dropped := g.DropDanglingLinks()
	return Result{Graph: clean, Mode: mode, DroppedLinks: dropped}, nil
}

func hasHints(req Request) bool {
	return len(req.Keywords) > 0 || len(req.Entities) > 0
}

// withHints appends the request's extra terms as basic nodes unless a node
// with the same label already exists.
func withHints(g common.Graph, req Request) common.Graph {
	if !hasHints(req) {
		return g
	}
	labels := make(map[string]bool, len(g.Nodes))
	ids := idSet{}
	for _, n := range g.Nodes {
		labels[strings.ToLower(n.Label)] = true
		ids[n.ID]++
	}
	add := func(term, category string) {
		term = strings.TrimSpace(term)
		key := strings.ToLower(term)
		if key == "" || labels[key] {
			return
		}
		labels[key] = true
		g.Nodes = append(g.Nodes, NewNode(ids.next(Slug(term)), term, category, common.NodeSourceBasic))
	}
	for _, e := range req.Entities {
		add(e, nlp.LabelEntity)
	}
	for _, k := range req.Keywords {
		add(k, CategoryKeyword)
	}
	return g
}
