package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoPolymarket/forecastviz/internal/api"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/rendercache"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dashboards and chart exports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.API.Addr = addr
				cfg.API.Enabled = true
			}

			opts.log.Info().
				Str("artifact_root", cfg.ArtifactRoot).
				Dur("sync_interval", cfg.SyncInterval).
				Str("profile", cfg.Profile).
				Bool("api", cfg.API.Enabled).
				Msg("forecastviz starting")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			store := payload.NewStore(cfg.ArtifactRoot, cfg.SyncInterval, opts.log)

			var apiServer *api.Server
			if cfg.API.Enabled {
				cache := rendercache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
				apiServer = api.NewServer(cfg.API.Addr, store, cfg.Frames, cache, opts.log)
				if err := apiServer.Start(ctx); err != nil {
					return err
				}
			}

			go func() {
				select {
				case <-sigCh:
					opts.log.Info().Msg("shutdown signal received")
					cancel()
				case <-ctx.Done():
				}
			}()

			err := store.Run(ctx)
			if apiServer != nil {
				shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				_ = apiServer.Shutdown(shutdownCtx)
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "override api listen address")
	return cmd
}
