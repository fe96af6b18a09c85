package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/api"
	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/storage"
)

func serveCmd(a *app) *cobra.Command {
	var host string
	var port int
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and event stream until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			apiCfg := api.DefaultConfig()
			apiCfg.Host = host
			apiCfg.Port = a.cfg.API.Port
			if cmd.Flags().Changed("port") {
				apiCfg.Port = port
			}
			apiCfg.RateLimit = a.cfg.API.RateLimit
			apiCfg.RateBurst = a.cfg.API.RateBurst
			if len(a.cfg.API.AllowedOrigins) > 0 {
				apiCfg.AllowedOrigins = a.cfg.API.AllowedOrigins
			}

			server := api.NewServer(apiCfg, a.controller, a.dispatcher, a.logger)
			if err := server.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API server running at %s (Ctrl+C to stop)\n", server.URL())

			out := cmd.OutOrStdout()
			reloaded := &events.FuncObserver{
				Name:  "serve",
				Types: []string{events.TypeDataReloaded},
				Fn: func(e events.Event) error {
					if data, ok := events.GetTypedData[events.DataReloadedEvent](e); ok {
						fmt.Fprintf(out, "Reloaded %s (%d records)\n", data.Path, data.Records)
					}
					return nil
				},
			}
			a.dispatcher.Register(reloaded)
			defer a.dispatcher.Unregister(reloaded)

			if a.cfg.Storage.Watch && !noWatch {
				if detector, ok := a.gateway.(storage.ChangeDetector); ok {
					watcher := storage.NewWatcher(a.gateway.Path(), detector, func(ctx context.Context) {
						if err := a.controller.Reload(ctx); err != nil {
							a.logger.Warn("reload after external edit failed", zap.Error(err))
						}
					}, a.logger)
					go func() {
						if err := watcher.Run(ctx); err != nil {
							a.logger.Warn("data file watcher stopped", zap.Error(err))
						}
					}()
				}
			}

			<-ctx.Done()
			fmt.Fprintln(cmd.OutOrStdout(), "Shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("API server shutdown", zap.Error(err))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Listen address")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the data file changes on disk")
	return cmd
}
