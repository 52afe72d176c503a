package layout

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Frame is the engine state after a tick.
type Frame struct {
	Tick       int           `json:"tick"`
	MaxTicks   int           `json:"max_ticks"`
	Progress   float64       `json:"progress"`
	Stabilized bool          `json:"stabilized"`
	Nodes      []common.Node `json:"nodes"`
	Links      []common.Link `json:"links"`
}

// Runner drives an Engine on a fixed interval.
type Runner struct {
	engine   *Engine
	interval time.Duration
}

// NewRunner creates a runner ticking at the engine's configured interval.
func NewRunner(engine *Engine) *Runner {
	return &Runner{
		engine:   engine,
		interval: engine.Config().TickInterval,
	}
}

// Run starts a stabilization run and calls onTick after every tick until the
// run completes, ctx is cancelled or onTick returns an error. An empty graph
// returns immediately.
//
// While the container has no area the ticker keeps firing without progress,
// so a concurrent Resize can start the simulation.
func (r *Runner) Run(ctx context.Context, onTick func(Frame) error) error {
	if len(r.engine.Nodes()) == 0 {
		return nil
	}

	r.engine.StartStabilization()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.engine.Update()
			f := r.engine.Frame()
			if onTick != nil {
				if err := onTick(f); err != nil {
					return err
				}
			}
			if f.Stabilized {
				return nil
			}
		}
	}
}

// RunToCompletion performs a full run without waiting between ticks and
// returns the final frame. Empty graphs and zero-area containers are
// returned unchanged. ctx is checked before every tick; on cancellation the
// frame reached so far is returned with ctx.Err().
func (r *Runner) RunToCompletion(ctx context.Context) (Frame, error) {
	w, h := r.engine.Size()
	if len(r.engine.Nodes()) == 0 || w <= 0 || h <= 0 {
		return r.engine.Frame(), nil
	}

	r.engine.StartStabilization()
	for r.engine.IsRunning() {
		if err := ctx.Err(); err != nil {
			return r.engine.Frame(), err
		}
		r.engine.Update()
	}
	return r.engine.Frame(), nil
}
