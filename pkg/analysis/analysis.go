// Package analysis computes structural statistics of a graph, used to size
// nodes by importance.
package analysis

import (
	"cmp"
	"slices"

	"github.com/OFFIS-RIT/nodelink/pkg/common"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// Stats holds per-node metrics keyed by node id.
//
// Components lists the connected components of the undirected view, largest
// first, each with its node ids sorted.
type Stats struct {
	Degree         map[string]int     `json:"degree"`
	PageRank       map[string]float64 `json:"pagerank"`
	Components     [][]string         `json:"components"`
	ComponentCount int                `json:"component_count"`
}

// Compute builds gonum graphs from g and derives degree, PageRank and
// connected components. Links with unknown endpoints and self links are
// ignored; parallel links count once.
func Compute(g common.Graph) Stats {
	stats := Stats{
		Degree:     make(map[string]int, len(g.Nodes)),
		PageRank:   make(map[string]float64, len(g.Nodes)),
		Components: [][]string{},
	}
	if len(g.Nodes) == 0 {
		return stats
	}

	directed := simple.NewDirectedGraph()
	undirected := simple.NewUndirectedGraph()
	idToNode := make(map[string]int64, len(g.Nodes))
	nodeToID := make(map[int64]string, len(g.Nodes))

	for _, n := range g.Nodes {
		if _, dup := idToNode[n.ID]; dup {
			continue
		}
		dn := directed.NewNode()
		directed.AddNode(dn)
		undirected.AddNode(simple.Node(dn.ID()))
		idToNode[n.ID] = dn.ID()
		nodeToID[dn.ID()] = n.ID
	}

	for _, l := range g.Links {
		u, ok := idToNode[l.Source]
		if !ok {
			continue
		}
		v, ok := idToNode[l.Target]
		if !ok || u == v {
			continue
		}
		directed.SetEdge(directed.NewEdge(directed.Node(u), directed.Node(v)))
		undirected.SetEdge(undirected.NewEdge(undirected.Node(u), undirected.Node(v)))
	}

	for id, n := range idToNode {
		stats.Degree[id] = undirected.From(n).Len()
	}

	for n, score := range network.PageRank(directed, pageRankDamping, pageRankTolerance) {
		stats.PageRank[nodeToID[n]] = score
	}

	for _, comp := range topo.ConnectedComponents(undirected) {
		ids := make([]string, 0, len(comp))
		for _, n := range comp {
			ids = append(ids, nodeToID[n.ID()])
		}
		slices.Sort(ids)
		stats.Components = append(stats.Components, ids)
	}
	slices.SortFunc(stats.Components, func(a, b []string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	stats.ComponentCount = len(stats.Components)

	return stats
}

// ApplyWeights returns a copy of g whose node weights are 1 plus the node's
// PageRank relative to the highest score, so weights fall in [1, 2]. Nodes
// missing from stats get weight 1.
func ApplyWeights(g common.Graph, stats Stats) common.Graph {
	out := g.Clone()

	var top float64
	for _, score := range stats.PageRank {
		top = max(top, score)
	}
	for i := range out.Nodes {
		score, ok := stats.PageRank[out.Nodes[i].ID]
		if !ok || top <= 0 {
			out.Nodes[i].Weight = 1
			continue
		}
		out.Nodes[i].Weight = 1 + score/top
	}
	return out
}
