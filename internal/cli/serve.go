package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gml/pkg/cache"
	"github.com/matzehuels/gml/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server that parses GML documents.

  POST /v1/parse?format=json|text|dot|svg|png|jpg   body: GML document
  GET  /healthz
  GET  /version

Parse errors are returned as 422 with a JSON body holding the error code,
message and token position. The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  gml serve --addr :9000
  curl --data-binary @deps.gml 'localhost:9000/v1/parse?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(nil, "serve:")

			srv := server.New(runner, loggerFromContext(ctx), server.Options{
				Addr:    addr,
				MaxBody: c.Config.Serve.MaxBody,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
