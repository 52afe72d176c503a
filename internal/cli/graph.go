package cli

import (
	"encoding/json"

	"github.com/OFFIS-RIT/nodelink/internal/ui"
	"github.com/OFFIS-RIT/nodelink/pkg/analysis"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"

	"github.com/spf13/cobra"
)

func graphCmd(opts *rootOptions) *cobra.Command {
	var (
		flags     sourceFlags
		outPath   string
		withStats bool
	)

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Convert text into a graph and print it as JSON",
		Long: "Reads text from a file, a web page (--url) or stdin and prints the\n" +
			"extracted graph as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var res graph.Result
			if flags.demo {
				res = graph.Result{Graph: graph.DemoGraph(), Mode: graph.ModeBasic}
			} else {
				text, err := readText(ctx, cmd, flags.source(args))
				if err != nil {
					return err
				}
				res, err = convert(ctx, opts, &flags, text)
				if err != nil {
					return err
				}
			}

			doc := struct {
				graph.Result
				Stats *analysis.Stats `json:"stats,omitempty"`
			}{Result: res}
			if withStats {
				stats := analysis.Compute(res.Graph)
				doc.Graph = analysis.ApplyWeights(res.Graph, stats)
				doc.Stats = &stats
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, outPath, append(data, '\n')); err != nil {
				return err
			}

			if !opts.quiet {
				w := cmd.ErrOrStderr()
				ui.Field(w, "Mode", res.Mode)
				ui.Field(w, "Nodes", len(res.Graph.Nodes))
				ui.Field(w, "Links", len(res.Graph.Links))
				if res.DroppedLinks > 0 {
					ui.Field(w, "Dropped links", ui.Warn.Sprint(res.DroppedLinks))
				}
				if res.Fallback != "" {
					ui.Field(w, "Fallback", ui.Warn.Sprint(res.Fallback))
				}
				if doc.Stats != nil {
					ui.Field(w, "Components", doc.Stats.ComponentCount)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&withStats, "stats", false, "Add degree, PageRank and component statistics")

	return cmd
}
