// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tsdist/cache"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/metrics"
	"github.com/katalvlaran/tsdist/service"
)

const shutdownGrace = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Starts the HTTP API with /v1/distances/{metric}, /v1/metrics, /healthz and /metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; default from config")

	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	col, err := metrics.New(reg)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(a.logger),
		service.WithMetrics(col, reg),
		service.WithDispatcher(device.NewDispatcher(
			device.WithDispatcherLogger(a.logger),
			device.WithStateListener(col.BreakerChanged),
		)),
	}
	if a.cfg.Cache.Enabled {
		c, closeCache, err := a.openCache(ctx)
		if err != nil {
			return err
		}
		defer closeCache()
		opts = append(opts, service.WithCache(c))
	}

	srv := service.New(a.cfg, opts...)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// openCache prefers Redis when an address is configured.
func (a *app) openCache(ctx context.Context) (cache.Cache, func(), error) {
	if a.cfg.Cache.RedisAddr == "" {
		a.logger.Info().Dur("ttl", a.cfg.Cache.TTL).Msg("result cache: in-memory")

		return cache.NewMemory(), func() {}, nil
	}
	r, err := cache.DialRedis(ctx, a.cfg.Cache.RedisAddr, a.cfg.Cache.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info().Str("addr", a.cfg.Cache.RedisAddr).Dur("ttl", a.cfg.Cache.TTL).Msg("result cache: redis")

	return r, func() { _ = r.Close() }, nil
}
