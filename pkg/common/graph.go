package common

// NodeSource tells which pipeline produced a node.
type NodeSource string

const (
	NodeSourceDemo  NodeSource = "demo"
	NodeSourceBasic NodeSource = "basic"
	NodeSourceModel NodeSource = "model"
)

// Graph is the node/link description consumed by the layout engine and the
// renderers. Its JSON shape matches what D3-style front ends expect.
//
// A graph contains:
//   - Nodes: vertices with a position, a velocity and a category tag
//   - Links: edges between two node ids, optionally flagged as animated
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is a graph vertex representing an extracted entity, keyword or
// concept. Position and velocity are mutated by the layout engine on every
// tick; all other fields are fixed for the life of a request.
//
// AICategory and AIConfidence are only set when Source is NodeSourceModel.
type Node struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	ShortLabel  string     `json:"short_label"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	VX          float64    `json:"vx"`
	VY          float64    `json:"vy"`
	Category    string     `json:"category"`
	Color       string     `json:"color,omitempty"`
	Description string     `json:"description,omitempty"`
	Weight      float64    `json:"weight,omitempty"`
	Source      NodeSource `json:"source,omitempty"`

	AICategory   *string  `json:"ai_category,omitempty"`
	AIConfidence *float64 `json:"ai_confidence,omitempty"`
}

// Link is an edge between two node ids. Links are immutable during a layout
// run; only node positions change.
type Link struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Type     string  `json:"type,omitempty"`
	Animated bool    `json:"animated"`
	Strength float64 `json:"strength,omitempty"`
}

// NodeIndex maps every node id to its index in g.Nodes.
func (g Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// DropDanglingLinks returns a copy of g without links whose source or target
// does not reference an existing node, plus the number of links removed.
func (g Graph) DropDanglingLinks() (Graph, int) {
	idx := g.NodeIndex()
	out := Graph{
		Nodes: append([]Node(nil), g.Nodes...),
		Links: make([]Link, 0, len(g.Links)),
	}
	for _, l := range g.Links {
		if _, ok := idx[l.Source]; !ok {
			continue
		}
		if _, ok := idx[l.Target]; !ok {
			continue
		}
		out.Links = append(out.Links, l)
	}
	return out, len(g.Links) - len(out.Links)
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: append([]Link(nil), g.Links...),
	}
	for i, n := range g.Nodes {
		if n.AICategory != nil {
			c := *n.AICategory
			n.AICategory = &c
		}
		if n.AIConfidence != nil {
			c := *n.AIConfidence
			n.AIConfidence = &c
		}
		out.Nodes[i] = n
	}
	return out
}

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}
