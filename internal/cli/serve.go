package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/forecast"
	"energy_forecast/internal/web"
	"energy_forecast/internal/ws"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Addr = addr
			}
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg := opts.cfg

	client, err := forecast.NewClient(cfg.ServiceURL)
	if err != nil {
		return err
	}
	svc, err := dashboard.NewService(client, dashboard.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}
	if _, err := svc.SetPageSize(cfg.PageSize); err != nil {
		return err
	}

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub, svc)
	svc.Subscribe(bridge)
	svc.AddNotifier(bridge)

	gin.SetMode(gin.ReleaseMode)
	router, err := web.NewRouter(svc, web.Options{
		WebSocket:      ws.NewHandler(hub, svc, cfg.RequestTimeout),
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("service_url", client.BaseURL()).
		Int("page_size", cfg.PageSize).
		Msg("starting dashboard")
	return web.Serve(ctx, cfg.Addr, router)
}
