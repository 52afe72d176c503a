package analysis

import (
	"math"
	"slices"
	"testing"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

func graphOf(ids []string, links [][2]string) common.Graph {
	g := common.Graph{}
	for _, id := range ids {
		g.Nodes = append(g.Nodes, common.Node{ID: id, Label: id})
	}
	for _, l := range links {
		g.Links = append(g.Links, common.Link{Source: l[0], Target: l[1]})
	}
	return g
}

func TestComputeDegreeAndComponents(t *testing.T) {
	g := graphOf(
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{
			{"a", "b"}, {"b", "c"}, {"c", "a"}, {"a", "b"},
			{"d", "e"},
			{"a", "ghost"}, {"f", "f"},
		},
	)

	stats := Compute(g)

	wantDegree := map[string]int{"a": 2, "b": 2, "c": 2, "d": 1, "e": 1, "f": 0}
	for id, want := range wantDegree {
		if got := stats.Degree[id]; got != want {
			t.Fatalf("degree[%s] = %d, want %d", id, got, want)
		}
	}

	if stats.ComponentCount != 3 {
		t.Fatalf("component count = %d, want 3", stats.ComponentCount)
	}
	want := [][]string{{"a", "b", "c"}, {"d", "e"}, {"f"}}
	for i := range want {
		if !slices.Equal(stats.Components[i], want[i]) {
			t.Fatalf("components = %v, want %v", stats.Components, want)
		}
	}
}

func TestComputePageRank(t *testing.T) {
	// star pointing at hub
	g := graphOf(
		[]string{"hub", "s1", "s2", "s3"},
		[][2]string{{"s1", "hub"}, {"s2", "hub"}, {"s3", "hub"}},
	)
	stats := Compute(g)

	var sum float64
	for _, v := range stats.PageRank {
		sum += v
	}
	if math.Abs(sum-1) > 1e-2 {
		t.Fatalf("pagerank sums to %f", sum)
	}
	for _, leaf := range []string{"s1", "s2", "s3"} {
		if stats.PageRank["hub"] <= stats.PageRank[leaf] {
			t.Fatalf("hub rank %f not above %s rank %f", stats.PageRank["hub"], leaf, stats.PageRank[leaf])
		}
	}

	weighted := ApplyWeights(g, stats)
	if weighted.Nodes[0].Weight != 2 {
		t.Fatalf("hub weight = %f, want 2", weighted.Nodes[0].Weight)
	}
	for _, n := range weighted.Nodes[1:] {
		if n.Weight <= 1 || n.Weight >= 2 {
			t.Fatalf("leaf weight %f outside (1, 2)", n.Weight)
		}
	}
	if g.Nodes[0].Weight != 0 {
		t.Fatalf("ApplyWeights mutated its input")
	}
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(common.Graph{})
	if stats.ComponentCount != 0 || len(stats.Degree) != 0 || stats.Components == nil {
		t.Fatalf("empty stats = %+v", stats)
	}
	g := ApplyWeights(graphOf([]string{"x"}, nil), stats)
	if g.Nodes[0].Weight != 1 {
		t.Fatalf("unscored node weight = %f", g.Nodes[0].Weight)
	}
}
