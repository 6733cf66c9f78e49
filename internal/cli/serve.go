package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcbanners/banners/internal/server"
	"github.com/mcbanners/banners/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP banner server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if c.NoCache {
				cfg.Cache.Driver = "none"
			}

			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			runner, err := pipeline.Setup(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)
			prog.done("Pipeline ready", "cache", cfg.Cache.Driver, "store", cfg.Store.Driver)

			srv := server.New(runner, logger, server.WithMaxAge(cfg.Cache.EntityTTL))
			return srv.ListenAndServe(ctx, cfg.Server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
