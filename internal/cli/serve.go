package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Settings and toggle states are kept in the backends named by the config
file. The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}

			store, err := c.newSettingsStore(ctx)
			if err != nil {
				return fmt.Errorf("open settings store: %w", err)
			}
			toggles, err := c.newToggleStore(ctx)
			if err != nil {
				_ = store.Close()
				return fmt.Errorf("open toggle store: %w", err)
			}
			runner, err := c.newRunner(ctx, noCache, store)
			if err != nil {
				_ = store.Close()
				_ = toggles.Close()
				return fmt.Errorf("initialize runner: %w", err)
			}

			srv := server.New(server.Config{
				Addr:     addr,
				Runner:   runner,
				Settings: store,
				Toggles:  toggles,
				Defaults: c.Config.Defaults,
				Logger:   logger,
			})
			defer srv.Close()

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printDetail("settings: %s  toggles: %s  cache: %s",
				c.Config.Store.Backend, c.Config.Toggles.Backend, c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the plan cache")
	return cmd
}
