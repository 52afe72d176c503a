package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/ui"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/layout"

	"github.com/spf13/cobra"
)

// layoutFlags size and seed a layout run.
type layoutFlags struct {
	width     int
	height    int
	placement string
	seed      uint64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 0, "Container width (defaults to the render preset)")
	cmd.Flags().IntVar(&f.height, "height", 0, "Container height (defaults to the render preset)")
	cmd.Flags().StringVar(&f.placement, "placement", string(layout.PlacementCircle), "Initial placement: circle, grid or random")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "Seed for random placement")
}

func (f *layoutFlags) size(opts *rootOptions) (float64, float64) {
	w, h := f.width, f.height
	if w <= 0 {
		w = opts.cfg.Render.Width
	}
	if h <= 0 {
		h = opts.cfg.Render.Height
	}
	return float64(w), float64(h)
}

// runLayout places g and stabilizes it without waiting between ticks.
func runLayout(ctx context.Context, opts *rootOptions, lf *layoutFlags, g common.Graph) (*layout.Engine, layout.Frame, error) {
	w, h := lf.size(opts)
	cfg := opts.cfg.Layout
	nodes := layout.Place(g.Nodes, w, h, cfg.Padding, layout.Placement(lf.placement), lf.seed)

	engine, err := layout.New(nodes, g.Links, w, h, cfg)
	if err != nil {
		return nil, layout.Frame{}, err
	}
	frame, err := layout.NewRunner(engine).RunToCompletion(ctx)
	if err != nil {
		return nil, layout.Frame{}, err
	}
	return engine, frame, nil
}

func layoutCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   sourceFlags
		lf      layoutFlags
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions and print them as JSON",
		Long: "Accepts a graph JSON document (such as the output of `nodelink graph`)\n" +
			"or plain text, runs a full stabilization and prints the final frame.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), cmd, opts, &flags, args)
			if err != nil {
				return err
			}

			start := time.Now()
			_, frame, err := runLayout(cmd.Context(), opts, &lf, g)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(frame, "", "  ")
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, outPath, append(data, '\n')); err != nil {
				return err
			}

			if !opts.quiet {
				w := cmd.ErrOrStderr()
				ui.Field(w, "Nodes", len(frame.Nodes))
				ui.Field(w, "Ticks", frame.Tick)
				if frame.Stabilized {
					ui.Field(w, "Stabilized", ui.Good.Sprint("yes"))
				} else {
					ui.Field(w, "Stabilized", ui.Warn.Sprint("no"))
				}
				ui.Note(w, "computed in %s", time.Since(start).Round(time.Millisecond))
			}
			return nil
		},
	}

	flags.register(cmd)
	lf.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the JSON to a file instead of stdout")

	return cmd
}
