package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/OFFIS-RIT/nodelink/internal/provider"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/loader"
	fileio "github.com/OFFIS-RIT/nodelink/pkg/loader/io"
	"github.com/OFFIS-RIT/nodelink/pkg/loader/web"

	"github.com/spf13/cobra"
)

// sourceFlags select where a command reads its input from.
type sourceFlags struct {
	url      string
	mode     string
	keywords []string
	entities []string
	demo     bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "Read the readable text of a web page")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Conversion mode: basic, enhanced or model")
	cmd.Flags().StringSliceVar(&f.keywords, "keyword", nil, "Extra keyword node (repeatable)")
	cmd.Flags().StringSliceVar(&f.entities, "entity", nil, "Extra entity node (repeatable)")
	cmd.Flags().BoolVar(&f.demo, "demo", false, "Use the built-in sample graph")
}

// source returns the location to read: the --url flag, the file argument or
// stdin.
func (f *sourceFlags) source(args []string) string {
	if f.url != "" {
		return f.url
	}
	if len(args) > 0 {
		return args[0]
	}
	return fileio.Stdin
}

func readText(ctx context.Context, cmd *cobra.Command, source string) (string, error) {
	r := loader.Router{
		Web:  web.NewLoader(web.NewLoaderParams{}),
		File: fileio.NewFileLoader(cmd.InOrStdin()),
	}
	text, err := r.FetchText(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return text, nil
}

// parseGraph accepts a bare graph or any object with a "graph" field, such
// as the output of the graph command.
func parseGraph(text string) (common.Graph, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return common.Graph{}, false
	}

	var doc struct {
		Graph *common.Graph `json:"graph"`
		Nodes []common.Node `json:"nodes"`
		Links []common.Link `json:"links"`
	}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return common.Graph{}, false
	}
	switch {
	case doc.Graph != nil:
		return *doc.Graph, true
	case doc.Nodes != nil:
		return common.Graph{Nodes: doc.Nodes, Links: doc.Links}, true
	default:
		return common.Graph{}, false
	}
}

// convert runs the text-to-graph adapter with the flags and preset.
func convert(ctx context.Context, opts *rootOptions, flags *sourceFlags, text string) (graph.Result, error) {
	requested := flags.mode
	if requested == "" {
		requested = opts.cfg.Adapter.Mode
	}
	mode, err := graph.ParseMode(requested)
	if err != nil {
		return graph.Result{}, err
	}

	var adapter *graph.Adapter
	if mode == graph.ModeBasic {
		adapter = provider.Adapter(opts.cfg, nil)
	} else {
		adapter = provider.Adapter(opts.cfg, provider.AIClientFromEnv())
	}

	return adapter.Convert(ctx, graph.Request{
		Text:     text,
		Mode:     mode,
		Keywords: flags.keywords,
		Entities: flags.entities,
	}), nil
}

// loadGraph resolves the input of the layout and render commands: the demo
// graph, a graph JSON document, or text that is converted first.
func loadGraph(ctx context.Context, cmd *cobra.Command, opts *rootOptions, flags *sourceFlags, args []string) (common.Graph, error) {
	if flags.demo {
		return graph.DemoGraph(), nil
	}

	text, err := readText(ctx, cmd, flags.source(args))
	if err != nil {
		return common.Graph{}, err
	}
	if g, ok := parseGraph(text); ok {
		clean, _ := g.DropDanglingLinks()
		return clean, nil
	}

	res, err := convert(ctx, opts, flags, text)
	if err != nil {
		return common.Graph{}, err
	}
	return res.Graph, nil
}

// writeOutput writes data to path, or to the command's stdout for "" and
// "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
