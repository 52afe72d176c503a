package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

const fencedGraph = "Here is the graph:\n```json\n" + `{
  "nodes": [
    {"id": "jfk", "label": "John F. Kennedy", "category": "person", "confidence": 0.92, "description": "US president"},
    {"id": "moon", "label": "Moon", "category": "location", "confidence": 1.4},
    {"id": "jfk", "label": "Kennedy again", "category": "PERSON"},
    {"label": "Apollo Program", "category": ""}
  ],
  "links": [
    {"source": "jfk", "target": "apollo program", "type": "established", "animated": false},
    {"source": "jfk", "target": "moon", "type": "relates-to", "animated": true},
    {"source": "jfk", "target": "mars", "type": "relates-to"},
    {"source": "moon", "target": "moon", "type": "self"}
  ]
}` + "\n```"

func TestExtractGraph(t *testing.T) {
	client := &fakeClient{completion: fencedGraph}
	g, err := NewExtractor(client, 0).ExtractGraph(context.Background(), "some text")
	if err != nil {
		t.Fatalf("ExtractGraph() error = %v", err)
	}

	if len(g.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %+v", g.Nodes)
	}
	for _, n := range g.Nodes {
		if n.Source != common.NodeSourceModel || n.AICategory == nil || n.AIConfidence == nil {
			t.Fatalf("node %s missing model fields: %+v", n.ID, n)
		}
	}
	if g.Nodes[1].Category != "LOC" || *g.Nodes[1].AIConfidence != 1 {
		t.Fatalf("moon node = %+v", g.Nodes[1])
	}
	if g.Nodes[2].ID != "jfk-2" {
		t.Fatalf("repeated model id not deduplicated: %q", g.Nodes[2].ID)
	}
	if g.Nodes[3].ID != "apollo-program" || g.Nodes[3].Category != CategoryConcept {
		t.Fatalf("label derived node = %+v", g.Nodes[3])
	}

	if len(g.Links) != 2 {
		t.Fatalf("expected 2 links, got %+v", g.Links)
	}
	if l := g.Links[0]; l.Target != "apollo-program" || !l.Animated {
		t.Fatalf("label referenced link = %+v", l)
	}
}

func TestExtractGraphErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		check  func(error) bool
	}{
		{
			name:   "unparseable",
			client: &fakeClient{completion: "I could not find any entities."},
			check: func(err error) bool {
				var perr *ai.ParseError
				return errors.As(err, &perr)
			},
		},
		{
			name:   "no nodes",
			client: &fakeClient{completion: `{"nodes": [], "links": []}`},
			check:  func(err error) bool { return errors.Is(err, ErrNoNodes) },
		},
		{
			name:   "client error",
			client: &fakeClient{completionErr: errors.New("connection refused")},
			check:  func(err error) bool { return err != nil },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor(tt.client, 5).ExtractGraph(context.Background(), "text")
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}

	if _, err := NewExtractor(nil, 5).ExtractGraph(context.Background(), "text"); !errors.Is(err, ai.ErrNoClient) {
		t.Fatalf("nil client error = %v", err)
	}
}

func TestExtractGraphNodeLimit(t *testing.T) {
	client := &fakeClient{completion: fencedGraph}
	g, err := NewExtractor(client, 2).ExtractGraph(context.Background(), "text")
	if err != nil {
		t.Fatalf("ExtractGraph() error = %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Fatalf("limited graph = %d nodes, %d links", len(g.Nodes), len(g.Links))
	}
}
