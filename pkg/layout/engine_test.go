package layout

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"pgregory.net/rapid"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxStabilizationSteps = 50
	return cfg
}

func mustEngine(t *testing.T, nodes []common.Node, links []common.Link, w, h float64, cfg Config) *Engine {
	t.Helper()
	e, err := New(nodes, links, w, h, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{name: "zero damping", edit: func(c *Config) { c.Damping = 0 }},
		{name: "damping of one", edit: func(c *Config) { c.Damping = 1 }},
		{name: "no steps", edit: func(c *Config) { c.MaxStabilizationSteps = 0 }},
		{name: "too many steps", edit: func(c *Config) { c.MaxStabilizationSteps = MaxStabilizationStepsLimit + 1 }},
		{name: "no interval", edit: func(c *Config) { c.TickInterval = 0 }},
		{name: "negative padding", edit: func(c *Config) { c.Padding = -1 }},
		{name: "negative force", edit: func(c *Config) { c.RepulsionForce = -5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.edit(&cfg)
			if _, err := New(nil, nil, 100, 100, cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestOverridesApply(t *testing.T) {
	zero, steps := 0.0, 12
	base := DefaultConfig()
	base.CenterForce = 0.02

	got := Overrides{CenterForce: &zero, Padding: &zero, MaxStabilizationSteps: &steps}.Apply(base)
	if got.CenterForce != 0 || got.Padding != 0 || got.MaxStabilizationSteps != 12 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.Damping != base.Damping || got.RepulsionForce != base.RepulsionForce {
		t.Fatalf("unset fields changed: %+v", got)
	}
	if (Overrides{}).Apply(base) != base {
		t.Fatalf("empty overrides changed the config")
	}
}

func TestUpdateClampsFarNodes(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 500, Y: 0}}
	links := []common.Link{{Source: "a", Target: "b"}}
	e := mustEngine(t, nodes, links, 400, 400, DefaultConfig())

	e.StartStabilization()
	out := e.Update()

	for _, n := range out {
		if n.X < 40 || n.X > 360 || n.Y < 40 || n.Y > 360 {
			t.Fatalf("node %s out of bounds: (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

func TestUpdateEmptyGraph(t *testing.T) {
	e := mustEngine(t, nil, nil, 400, 400, DefaultConfig())
	e.StartStabilization()

	out := e.Update()
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
	if e.Tick() != 0 {
		t.Fatalf("empty graph should not advance, tick = %d", e.Tick())
	}
}

func TestUpdateZeroAreaIsNoop(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 10, Y: 10}, {ID: "b", X: 12, Y: 10}}
	for _, size := range [][2]float64{{0, 400}, {400, 0}, {0, 0}} {
		e := mustEngine(t, nodes, nil, size[0], size[1], DefaultConfig())
		e.StartStabilization()
		out := e.Update()
		if out[0].X != 10 || out[1].X != 12 {
			t.Fatalf("size %v: nodes moved: %+v", size, out)
		}
		if e.Tick() != 0 {
			t.Fatalf("size %v: tick advanced to %d", size, e.Tick())
		}
	}
}

func TestUpdateBeforeStartIsNoop(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 0, Y: 0}}
	e := mustEngine(t, nodes, nil, 400, 400, DefaultConfig())

	out := e.Update()
	if out[0].X != 0 || out[0].Y != 0 {
		t.Fatalf("node moved without a run: %+v", out[0])
	}
	if e.IsStabilized() {
		t.Fatalf("engine must not report stabilized before the first run")
	}
}

func TestStabilizationTiming(t *testing.T) {
	cfg := testConfig()
	nodes := []common.Node{{ID: "a", X: 100, Y: 100}, {ID: "b", X: 110, Y: 100}}
	e := mustEngine(t, nodes, nil, 400, 400, cfg)

	e.StartStabilization()
	for i := 1; i < cfg.MaxStabilizationSteps; i++ {
		e.Update()
		if e.IsStabilized() {
			t.Fatalf("stabilized early after %d ticks", i)
		}
	}
	e.Update()
	if !e.IsStabilized() {
		t.Fatalf("not stabilized after %d ticks", cfg.MaxStabilizationSteps)
	}
	if e.Progress() != 1 {
		t.Fatalf("progress = %v at stabilization, want 1", e.Progress())
	}

	before := e.Nodes()
	after := e.Update()
	if before[0] != after[0] || before[1] != after[1] {
		t.Fatalf("nodes moved after stabilization")
	}
}

func TestRestartResetsProgress(t *testing.T) {
	cfg := testConfig()
	e := mustEngine(t, []common.Node{{ID: "a", X: 50, Y: 50}}, nil, 400, 400, cfg)

	e.StartStabilization()
	for i := 0; i < 10; i++ {
		e.Update()
	}
	e.StartStabilization()
	if e.Tick() != 0 || e.Progress() != 0 {
		t.Fatalf("restart did not reset: tick=%d progress=%v", e.Tick(), e.Progress())
	}
	if e.IsStabilized() {
		t.Fatalf("restarted run reported stabilized")
	}
}

func TestCoincidentNodesStayFinite(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 200, Y: 200}, {ID: "b", X: 200, Y: 200}}
	links := []common.Link{{Source: "a", Target: "b"}}
	e := mustEngine(t, nodes, links, 400, 400, DefaultConfig())

	e.StartStabilization()
	out := e.Update()
	for _, n := range out {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.VX) || math.IsNaN(n.VY) {
			t.Fatalf("NaN in node %+v", n)
		}
		if n.X != 200 || n.Y != 200 {
			t.Fatalf("coincident node moved: %+v", n)
		}
	}
}

func TestLinkPullsNodesTogether(t *testing.T) {
	cfg := DefaultConfig()
	nodes := []common.Node{{ID: "a", X: 40, Y: 200}, {ID: "b", X: 360, Y: 200}}
	links := []common.Link{{Source: "a", Target: "b"}}
	e := mustEngine(t, nodes, links, 400, 400, cfg)

	if _, err := NewRunner(e).RunToCompletion(context.Background()); err != nil {
		t.Fatalf("RunToCompletion() error = %v", err)
	}

	out := e.Nodes()
	d := math.Hypot(out[0].X-out[1].X, out[0].Y-out[1].Y)
	if d >= 320 {
		t.Fatalf("linked nodes did not move closer: d = %v", d)
	}
	if d > cfg.IdealDistance+40 {
		t.Fatalf("linked nodes settled too far apart: d = %v", d)
	}
}

func TestRepulsionPushesNodesApart(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 195, Y: 200}, {ID: "b", X: 205, Y: 200}}
	e := mustEngine(t, nodes, nil, 400, 400, DefaultConfig())

	e.StartStabilization()
	out := e.Update()
	if out[0].X >= 195 || out[1].X <= 205 {
		t.Fatalf("nodes were not pushed apart: %+v", out)
	}
}

func TestUpdateIsOrderIndependent(t *testing.T) {
	nodes := []common.Node{
		{ID: "a", X: 100, Y: 100},
		{ID: "b", X: 130, Y: 90},
		{ID: "c", X: 300, Y: 250},
	}
	links := []common.Link{{Source: "a", Target: "c"}, {Source: "b", Target: "c"}}
	reversed := []common.Node{nodes[2], nodes[1], nodes[0]}

	e1 := mustEngine(t, nodes, links, 400, 400, DefaultConfig())
	e2 := mustEngine(t, reversed, links, 400, 400, DefaultConfig())
	e1.StartStabilization()
	e2.StartStabilization()

	out1 := e1.Update()
	out2 := e2.Update()
	for i := range out1 {
		j := len(out2) - 1 - i
		if math.Abs(out1[i].X-out2[j].X) > 1e-9 || math.Abs(out1[i].Y-out2[j].Y) > 1e-9 {
			t.Fatalf("node %s differs by order: %+v vs %+v", out1[i].ID, out1[i], out2[j])
		}
	}
}

func TestDanglingLinksDropped(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 100, Y: 100}}
	links := []common.Link{{Source: "a", Target: "ghost"}}
	e := mustEngine(t, nodes, links, 400, 400, DefaultConfig())

	if len(e.Links()) != 0 {
		t.Fatalf("dangling link kept: %+v", e.Links())
	}
	e.StartStabilization()
	out := e.Update()
	if len(out) != 1 || math.IsNaN(out[0].X) {
		t.Fatalf("unexpected update result: %+v", out)
	}
}

func TestDuplicateNodeIDsKeepFirst(t *testing.T) {
	nodes := []common.Node{
		{ID: "a", X: 40, Y: 200},
		{ID: "b", X: 360, Y: 200},
		{ID: "a", X: 200, Y: 40},
	}
	links := []common.Link{{Source: "a", Target: "b"}}
	e := mustEngine(t, nodes, links, 400, 400, testConfig())

	out := e.Nodes()
	if len(out) != 2 || out[0].X != 40 || out[0].Y != 200 {
		t.Fatalf("duplicate not dropped: %+v", out)
	}

	e.StartStabilization()
	out = e.Update()
	if out[0].X <= 40 {
		t.Fatalf("first node received no attraction: %+v", out[0])
	}
}

func TestTinyContainerCollapsesToCenter(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 5, Y: 5}, {ID: "b", X: 60, Y: 10}}
	e := mustEngine(t, nodes, nil, 50, 70, DefaultConfig())

	e.StartStabilization()
	out := e.Update()
	for _, n := range out {
		if n.X != 25 || n.Y != 35 {
			t.Fatalf("expected node at container centre, got (%v, %v)", n.X, n.Y)
		}
	}
}

func TestResizeRestartsAndRescales(t *testing.T) {
	nodes := []common.Node{{ID: "a", X: 100, Y: 100}}
	e := mustEngine(t, nodes, nil, 200, 200, testConfig())

	e.StartStabilization()
	e.Update()
	e.Resize(400, 400)

	if e.Tick() != 0 || !e.IsRunning() {
		t.Fatalf("resize did not restart the run")
	}
	out := e.Nodes()
	if out[0].X != 200 || out[0].Y != 200 {
		t.Fatalf("node not rescaled: %+v", out[0])
	}

	e.Resize(0, 10)
	if w, h := e.Size(); w != 400 || h != 400 {
		t.Fatalf("non-positive resize applied: %vx%v", w, h)
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	e := mustEngine(t, []common.Node{{ID: "a", X: 100, Y: 100}}, nil, 400, 400, DefaultConfig())

	snap := e.Nodes()
	snap[0].X = 999
	if e.Nodes()[0].X != 100 {
		t.Fatalf("snapshot aliases engine state")
	}
}

func TestPropertyNodesStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		w := rapid.Float64Range(1, 1000).Draw(t, "width")
		h := rapid.Float64Range(1, 1000).Draw(t, "height")

		cfg := DefaultConfig()
		cfg.Padding = rapid.Float64Range(0, 100).Draw(t, "padding")
		cfg.MaxStabilizationSteps = 20

		nodes := make([]common.Node, n)
		for i := range nodes {
			nodes[i] = common.Node{
				ID: string(rune('a' + i)),
				X:  rapid.Float64Range(-2000, 2000).Draw(t, "x"),
				Y:  rapid.Float64Range(-2000, 2000).Draw(t, "y"),
			}
		}
		var links []common.Link
		linkCount := rapid.IntRange(0, 2*n).Draw(t, "links")
		for i := 0; i < linkCount; i++ {
			s := rapid.IntRange(0, n-1).Draw(t, "src")
			d := rapid.IntRange(0, n-1).Draw(t, "dst")
			links = append(links, common.Link{Source: nodes[s].ID, Target: nodes[d].ID})
		}

		e, err := New(nodes, links, w, h, cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		e.StartStabilization()

		lastProgress := 0.0
		for e.IsRunning() {
			out := e.Update()
			for _, nd := range out {
				checkAxis(t, nd.X, cfg.Padding, w)
				checkAxis(t, nd.Y, cfg.Padding, h)
			}
			p := e.Progress()
			if p < lastProgress || p > 1 {
				t.Fatalf("progress went from %v to %v", lastProgress, p)
			}
			lastProgress = p
		}
		if !e.IsStabilized() || lastProgress != 1 {
			t.Fatalf("run ended without stabilizing: progress %v", lastProgress)
		}
	})
}

func checkAxis(t *rapid.T, v, padding, dim float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("non-finite coordinate %v", v)
	}
	if dim-padding < padding {
		if v != dim/2 {
			t.Fatalf("coordinate %v, want collapsed centre %v", v, dim/2)
		}
		return
	}
	if v < padding || v > dim-padding {
		t.Fatalf("coordinate %v outside [%v, %v]", v, padding, dim-padding)
	}
}
