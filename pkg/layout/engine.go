package layout

import (
	"math"
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Engine runs a damped force-directed simulation over a fixed set of nodes
// and links inside a rectangular container.
//
// Each Update computes every node's next state from the positions at the
// start of the tick, so the result does not depend on node order. A run
// lasts exactly Config.MaxStabilizationSteps ticks after StartStabilization.
//
// Engine is safe for concurrent use. Every accessor returns a copy.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	nodes  []common.Node
	links  []common.Link
	edges  [][2]int
	width  float64
	height float64

	tick    int
	running bool
	started bool
}

// New creates an engine for the given graph. Nodes are copied and their
// velocities reset. Later nodes repeating an earlier id are dropped, as are
// links referencing unknown node ids.
func New(nodes []common.Node, links []common.Link, width, height float64, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		width:  width,
		height: height,
	}
	e.setGraph(nodes, links)
	return e, nil
}

func (e *Engine) setGraph(nodes []common.Node, links []common.Link) {
	e.nodes = make([]common.Node, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		n.VX, n.VY = 0, 0
		if !finite(n.X) {
			n.X = e.width / 2
		}
		if !finite(n.Y) {
			n.Y = e.height / 2
		}
		e.nodes = append(e.nodes, n)
	}

	g, _ := common.Graph{Nodes: e.nodes, Links: links}.DropDanglingLinks()
	e.links = g.Links

	idx := g.NodeIndex()
	e.edges = make([][2]int, 0, len(e.links))
	for _, l := range e.links {
		s, t := idx[l.Source], idx[l.Target]
		if s == t {
			continue
		}
		e.edges = append(e.edges, [2]int{s, t})
	}
}

// StartStabilization resets the tick counter and begins a new run. Calling
// it during a run restarts the run from tick zero.
func (e *Engine) StartStabilization() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick = 0
	e.running = true
	e.started = true
}

// Update advances the simulation by one tick and returns the new node
// states. It is a no-op when no run is active, the node set is empty, or
// the container has no area.
func (e *Engine) Update() []common.Node {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || len(e.nodes) == 0 || e.width <= 0 || e.height <= 0 {
		return e.snapshot()
	}

	fx, fy := e.forces()

	next := make([]common.Node, len(e.nodes))
	for i, n := range e.nodes {
		n.VX = (n.VX + fx[i]) * e.cfg.Damping
		n.VY = (n.VY + fy[i]) * e.cfg.Damping
		n.X = clamp(n.X+n.VX, e.cfg.Padding, e.width)
		n.Y = clamp(n.Y+n.VY, e.cfg.Padding, e.height)
		if !finite(n.VX) || !finite(n.VY) {
			n.VX, n.VY = 0, 0
		}
		next[i] = n
	}
	e.nodes = next

	e.tick++
	if e.tick >= e.cfg.MaxStabilizationSteps {
		e.running = false
	}

	return e.snapshot()
}

// forces returns the net force on every node, computed from the current
// positions only.
func (e *Engine) forces() ([]float64, []float64) {
	n := len(e.nodes)
	fx := make([]float64, n)
	fy := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := e.nodes[i].X - e.nodes[j].X
			dy := e.nodes[i].Y - e.nodes[j].Y
			d := math.Hypot(dx, dy)
			if d <= 0 || d >= e.cfg.RepulsionRadius {
				continue
			}
			f := e.cfg.RepulsionForce / (d * d)
			ux, uy := dx/d, dy/d
			fx[i] += ux * f
			fy[i] += uy * f
			fx[j] -= ux * f
			fy[j] -= uy * f
		}
	}

	for _, edge := range e.edges {
		s, t := edge[0], edge[1]
		dx := e.nodes[t].X - e.nodes[s].X
		dy := e.nodes[t].Y - e.nodes[s].Y
		d := math.Hypot(dx, dy)
		if d <= e.cfg.IdealDistance {
			continue
		}
		f := (d - e.cfg.IdealDistance) * e.cfg.AttractionForce
		ux, uy := dx/d, dy/d
		fx[s] += ux * f
		fy[s] += uy * f
		fx[t] -= ux * f
		fy[t] -= uy * f
	}

	if e.cfg.CenterForce > 0 {
		cx, cy := e.width/2, e.height/2
		for i := range e.nodes {
			fx[i] += (cx - e.nodes[i].X) * e.cfg.CenterForce
			fy[i] += (cy - e.nodes[i].Y) * e.cfg.CenterForce
		}
	}

	return fx, fy
}

// IsStabilized reports whether the most recent run has completed. It is
// false before the first StartStabilization.
func (e *Engine) IsStabilized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && !e.running
}

// IsRunning reports whether a run is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Progress returns the completed fraction of the current run in [0, 1].
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress()
}

func (e *Engine) progress() float64 {
	p := float64(e.tick) / float64(e.cfg.MaxStabilizationSteps)
	return math.Min(1, math.Max(0, p))
}

// Tick returns the number of ticks completed in the current run.
func (e *Engine) Tick() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// MaxTicks returns the length of a run.
func (e *Engine) MaxTicks() int {
	return e.cfg.MaxStabilizationSteps
}

// Config returns the constants the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Nodes returns a copy of the current node states.
func (e *Engine) Nodes() []common.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Links returns the links that survived construction.
func (e *Engine) Links() []common.Link {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]common.Link{}, e.links...)
}

// Size returns the container dimensions.
func (e *Engine) Size() (float64, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Resize changes the container dimensions, scales node positions into the
// new box and restarts the run. Non-positive dimensions are ignored.
func (e *Engine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	oldW, oldH := e.width, e.height
	for i := range e.nodes {
		n := &e.nodes[i]
		if oldW > 0 {
			n.X = n.X * width / oldW
		} else {
			n.X = width / 2
		}
		if oldH > 0 {
			n.Y = n.Y * height / oldH
		} else {
			n.Y = height / 2
		}
		n.X = clamp(n.X, e.cfg.Padding, width)
		n.Y = clamp(n.Y, e.cfg.Padding, height)
		n.VX, n.VY = 0, 0
	}
	e.width, e.height = width, height

	e.tick = 0
	e.running = true
	e.started = true
}

// Frame returns the state of the engine as a single consistent value.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Frame{
		Tick:       e.tick,
		MaxTicks:   e.cfg.MaxStabilizationSteps,
		Progress:   e.progress(),
		Stabilized: e.started && !e.running,
		Nodes:      e.snapshot(),
		Links:      append([]common.Link{}, e.links...),
	}
}

func (e *Engine) snapshot() []common.Node {
	return append([]common.Node{}, e.nodes...)
}

// clamp keeps v inside [padding, dim-padding]. When the box is narrower than
// twice the padding every coordinate collapses to its middle.
func clamp(v, padding, dim float64) float64 {
	lo, hi := padding, dim-padding
	if hi < lo || !finite(v) {
		return dim / 2
	}
	return math.Min(hi, math.Max(lo, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
