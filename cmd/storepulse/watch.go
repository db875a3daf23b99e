package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// watchCmd polls tenant stats on an interval and exposes client metrics,
// for running storepulse as a long-lived monitoring agent.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll tenant stats continuously and expose Prometheus metrics",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	displayAppName()

	metricsServer := &http.Server{Addr: client.cfg.MetricsAddr, Handler: promhttp.Handler()}
	go listenAndServe(metricsServer)

	log.Info().
		Str("metrics", client.cfg.MetricsAddr).
		Dur("interval", client.cfg.WatchInterval).
		Msg("watching tenant stats")

	pollStats(cmd.Context())
	ticker := time.NewTicker(client.cfg.WatchInterval)
	defer ticker.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			pollStats(cmd.Context())
		case <-stop:
			return shutdown(metricsServer)
		case <-cmd.Context().Done():
			return shutdown(metricsServer)
		}
	}
}

func pollStats(ctx context.Context) {
	stats, err := client.api.Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("stats poll failed")
		return
	}
	log.Info().
		Int64("customers", stats.Customers).
		Int64("products", stats.Products).
		Int64("orders", stats.Orders).
		Float64("revenue", stats.TotalRevenue).
		Msg("tenant stats")
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("metrics listener started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics listener failed")
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "[shutdown] server.Shutdown")
	}
	return nil
}
