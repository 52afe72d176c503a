package layout

import (
	"testing"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

func fourNodes() []common.Node {
	return []common.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
}

func TestPlaceStrategiesStayInside(t *testing.T) {
	tests := []struct {
		name     string
		strategy Placement
	}{
		{"circle", PlacementCircle},
		{"grid", PlacementGrid},
		{"random", PlacementRandom},
		{"unknown", Placement("spiral")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes := Place(fourNodes(), 400, 300, 40, tc.strategy, 7)
			if len(nodes) != 4 {
				t.Fatalf("got %d nodes, want 4", len(nodes))
			}
			if Unplaced(nodes) {
				t.Fatalf("nodes were not placed")
			}
			for _, n := range nodes {
				if n.X < 40 || n.X > 360 || n.Y < 40 || n.Y > 260 {
					t.Fatalf("node %s at (%v,%v) outside padded box", n.ID, n.X, n.Y)
				}
			}
		})
	}
}

func TestPlaceKeepsExistingPositions(t *testing.T) {
	nodes := fourNodes()
	nodes[2].X, nodes[2].Y = 12, 34

	got := Place(nodes, 400, 300, 40, PlacementGrid, 1)
	if got[2].X != 12 || got[2].Y != 34 || got[0].X != 0 {
		t.Fatalf("placed nodes were moved: %+v", got)
	}
	got[0].X = 99
	if nodes[0].X != 0 {
		t.Fatalf("Place modified its input")
	}
}

func TestPlaceRandomIsDeterministic(t *testing.T) {
	a := PlaceRandom(fourNodes(), 400, 300, 10, 42)
	b := PlaceRandom(fourNodes(), 400, 300, 10, 42)
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("node %d differs between runs with the same seed", i)
		}
	}
}

func TestPlacersLeaveInputUntouched(t *testing.T) {
	nodes := make([]common.Node, 17)
	for i := range nodes {
		nodes[i].ID = string(rune('a' + i))
	}

	placers := map[string]func() []common.Node{
		"circle": func() []common.Node { return PlaceCircle(nodes, 400, 300, 40) },
		"grid":   func() []common.Node { return PlaceGrid(nodes, 400, 300, 40) },
		"random": func() []common.Node { return PlaceRandom(nodes, 400, 300, 40, 7) },
	}
	for name, place := range placers {
		t.Run(name, func(t *testing.T) {
			out := place()
			if len(out) != len(nodes) {
				t.Fatalf("placed %d nodes, want %d", len(out), len(nodes))
			}
			for _, n := range out {
				if n.X < 40 || n.X > 360 || n.Y < 40 || n.Y > 260 {
					t.Fatalf("node %s placed out of bounds: (%v, %v)", n.ID, n.X, n.Y)
				}
			}
		})
	}
	if !Unplaced(nodes) {
		t.Fatalf("placement modified its input")
	}
}
