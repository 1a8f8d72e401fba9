package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pystarter/internal/config"
	"github.com/goliatone/go-pystarter/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, orch,
				server.WithLogger(log.Log),
				server.WithRenderer(a.cfg.Renderer),
				server.WithTheme(a.cfg.Theme, a.cfg.Variant),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, a.cfg.Addr, a.cfg.ShutdownGrace)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	_ = a.v.BindPFlag(config.KeyAddr, cmd.Flags().Lookup("addr"))
	return cmd
}
