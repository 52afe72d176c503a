package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OFFIS-RIT/nodelink/internal/ui"
	"github.com/OFFIS-RIT/nodelink/pkg/analysis"
	"github.com/OFFIS-RIT/nodelink/pkg/render"

	"github.com/spf13/cobra"
)

// imageFormat picks the output format from the flag, then the file
// extension, and defaults to SVG.
func imageFormat(flag, path string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "", "svg":
		return "svg", nil
	case "png":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    sourceFlags
		lf       layoutFlags
		outPath  string
		format   string
		hover    string
		selected string
		weighted bool
		noLabels bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out a graph and draw it as SVG or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := imageFormat(format, outPath)
			if err != nil {
				return err
			}

			g, err := loadGraph(cmd.Context(), cmd, opts, &flags, args)
			if err != nil {
				return err
			}
			if weighted {
				g = analysis.ApplyWeights(g, analysis.Compute(g))
			}

			engine, frame, err := runLayout(cmd.Context(), opts, &lf, g)
			if err != nil {
				return err
			}

			style := opts.cfg.Render
			if noLabels {
				style.Labels = false
			}
			view := render.NewView(engine, style)
			view.Hover(hover)
			view.Select(selected)

			var buf bytes.Buffer
			if f == "png" {
				err = view.RenderPNG(&buf)
			} else {
				err = view.RenderSVG(&buf)
			}
			if err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
			if err := writeOutput(cmd, outPath, buf.Bytes()); err != nil {
				return err
			}

			if !opts.quiet {
				w := cmd.ErrOrStderr()
				ui.Field(w, "Format", f)
				ui.Field(w, "Nodes", len(frame.Nodes))
				ui.Field(w, "Links", len(frame.Links))
				if outPath != "" && outPath != "-" {
					ui.Field(w, "Written", ui.Good.Sprint(outPath))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	lf.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file; the extension selects svg or png")
	cmd.Flags().StringVar(&format, "format", "", "Image format: svg or png")
	cmd.Flags().StringVar(&hover, "hover", "", "Node id to highlight")
	cmd.Flags().StringVar(&selected, "select", "", "Node id to mark as selected")
	cmd.Flags().BoolVar(&weighted, "weighted", false, "Scale node radius by PageRank")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "Do not draw node labels")

	return cmd
}
