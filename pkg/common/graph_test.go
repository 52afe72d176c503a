package common

import "testing"

func TestDropDanglingLinks(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "x"}, {ID: "y"}},
		Links: []Link{
			{Source: "x", Target: "y"},
			{Source: "x", Target: "missing"},
			{Source: "ghost", Target: "y"},
		},
	}

	out, dropped := g.DropDanglingLinks()
	if dropped != 2 {
		t.Fatalf("expected 2 dropped links, got %d", dropped)
	}
	if len(out.Links) != 1 || out.Links[0].Target != "y" {
		t.Fatalf("unexpected links: %+v", out.Links)
	}
	if len(g.Links) != 3 {
		t.Fatalf("input graph was modified: %+v", g.Links)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cat := "PERSON"
	conf := 0.9
	g := Graph{Nodes: []Node{{ID: "a", AICategory: &cat, AIConfidence: &conf}}}

	c := g.Clone()
	c.Nodes[0].X = 10
	*c.Nodes[0].AICategory = "ORG"

	if g.Nodes[0].X != 0 {
		t.Fatalf("clone shares node storage")
	}
	if *g.Nodes[0].AICategory != "PERSON" {
		t.Fatalf("clone shares optional fields")
	}
}

func TestNodeIndex(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}}
	idx := g.NodeIndex()
	if idx["a"] != 0 || idx["b"] != 1 || len(idx) != 2 {
		t.Fatalf("unexpected index: %v", idx)
	}
}
