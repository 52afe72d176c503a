package cli

import (
	"github.com/OFFIS-RIT/nodelink/internal/server"
	"github.com/OFFIS-RIT/nodelink/internal/util"

	"github.com/spf13/cobra"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serves the HTTP API until interrupted. The port defaults to PORT or 8080.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if port == "" {
				port = util.GetEnvString("PORT", "8080")
			}
			server.Serve(opts.cfg, port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides PORT)")

	return cmd
}
