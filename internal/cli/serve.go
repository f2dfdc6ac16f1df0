package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored trees and their drawings over HTTP",
		Long: `Serve the HTTP API: store trees, then fetch their drawing primitives for any
viewport and zoom, or stream them over a websocket.

The store, cache and server settings come from the config file and the
SMARTVIEW_* environment variables (see 'smartview config show').`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}

func (c *CLI) serve(ctx context.Context) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	c.Logger.Info("using backends", "store", c.Config.Store.Backend, "cache", c.Config.Cache.Backend)

	srv := api.New(st, runner, c.Logger,
		api.WithAllowedOrigins(c.Config.Server.AllowedOrigins),
		api.WithDrawDefaults(c.Config.Draw.Drawer, c.Config.Draw.AnnotationLimit))
	return srv.ListenAndServe(ctx, c.Config.Server)
}
