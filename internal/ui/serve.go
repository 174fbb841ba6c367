package ui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/api"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve timetables over an HTTP JSON API",
		Long: `Serve the timetables, the evaluation planner and entry editing over
HTTP until interrupted.

Example:
  horario serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(a.repo, a.scheduler(), api.Options{
				AllowOrigins: a.config.Server.AllowOrigins,
				Now:          a.now,
			}, a.log)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", a.config.Server.Addr, "Listen address")
	return cmd
}
