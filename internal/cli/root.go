package cli

import (
	"github.com/OFFIS-RIT/nodelink/internal/config"
	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/internal/ui"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"github.com/OFFIS-RIT/nodelink/pkg/logger/console"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
	quiet      bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nodelink",
		Short: "nodelink turns text into laid out node-link diagrams",
		Long: ui.Brand.Sprint("nodelink") + " extracts entities and relationships from text\n" +
			ui.Subtle.Sprint("and renders them as a force-directed graph"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.LoadEnv()
			debug := opts.debug || util.GetEnvBool("DEBUG", false)
			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug:  debug,
				Output: cmd.ErrOrStderr(),
			}))

			path := opts.configPath
			if path == "" {
				path = util.GetEnv("LAYOUT_CONFIG")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.SetVersionTemplate("nodelink {{ .Version }}\n")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML preset for layout, render and adapter settings")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the summary on stderr")

	cmd.AddCommand(
		graphCmd(opts),
		layoutCmd(opts),
		renderCmd(opts),
		serveCmd(opts),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		ui.Failure(cmd.ErrOrStderr(), "nodelink: %v", err)
	}
	return err
}
