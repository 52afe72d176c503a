package layout

import (
	"math"
	"math/rand/v2"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Unplaced reports whether every node still sits at the origin, which is
// how freshly converted graphs arrive.
func Unplaced(nodes []common.Node) bool {
	for _, n := range nodes {
		if n.X != 0 || n.Y != 0 {
			return false
		}
	}
	return true
}

// PlaceCircle spreads nodes evenly on a circle centred in the container.
// The input slice is not modified.
func PlaceCircle(nodes []common.Node, width, height, padding float64) []common.Node {
	out := append([]common.Node{}, nodes...)
	if len(out) == 0 {
		return out
	}

	cx, cy := width/2, height/2
	r := math.Max(0, math.Min(width, height)/2-padding)
	if len(out) == 1 {
		r = 0
	}
	step := 2 * math.Pi / float64(len(out))
	for i := range out {
		angle := float64(i) * step
		out[i].X = cx + r*math.Cos(angle)
		out[i].Y = cy + r*math.Sin(angle)
		out[i].VX, out[i].VY = 0, 0
	}
	return out
}

// PlaceGrid arranges nodes row by row in a square-ish grid inside the
// padded container.
func PlaceGrid(nodes []common.Node, width, height, padding float64) []common.Node {
	out := append([]common.Node{}, nodes...)
	if len(out) == 0 {
		return out
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(out)))))
	rows := (len(out) + cols - 1) / cols
	innerW := math.Max(0, width-2*padding)
	innerH := math.Max(0, height-2*padding)
	cellW := innerW / float64(cols)
	cellH := innerH / float64(rows)

	for i := range out {
		col, row := i%cols, i/cols
		out[i].X = padding + cellW*(float64(col)+0.5)
		out[i].Y = padding + cellH*(float64(row)+0.5)
		out[i].VX, out[i].VY = 0, 0
	}
	return out
}

// PlaceRandom scatters nodes uniformly inside the padded container. The same
// seed always yields the same placement.
func PlaceRandom(nodes []common.Node, width, height, padding float64, seed uint64) []common.Node {
	out := append([]common.Node{}, nodes...)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	innerW := math.Max(0, width-2*padding)
	innerH := math.Max(0, height-2*padding)
	for i := range out {
		out[i].X = padding + rng.Float64()*innerW
		out[i].Y = padding + rng.Float64()*innerH
		out[i].VX, out[i].VY = 0, 0
	}
	return out
}

// Placement names an initial placement strategy.
type Placement string

const (
	PlacementCircle Placement = "circle"
	PlacementGrid   Placement = "grid"
	PlacementRandom Placement = "random"
)

// Place assigns initial positions with strategy when every node is still
// unplaced and returns the nodes unchanged otherwise. An empty or unknown
// strategy places on a circle.
func Place(nodes []common.Node, width, height, padding float64, strategy Placement, seed uint64) []common.Node {
	if !Unplaced(nodes) {
		return append([]common.Node{}, nodes...)
	}
	switch strategy {
	case PlacementGrid:
		return PlaceGrid(nodes, width, height, padding)
	case PlacementRandom:
		return PlaceRandom(nodes, width, height, padding, seed)
	default:
		return PlaceCircle(nodes, width, height, padding)
	}
}
