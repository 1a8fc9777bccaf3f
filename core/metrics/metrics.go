// Package metrics exposes Prometheus collectors shared by the bot runtime.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreconfig "github.com/m3rciful/contentbot/core/config"
	"github.com/m3rciful/contentbot/core/logger"
)

const namespace = "contentbot"

var (
	UpdatesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_handled_total",
		Help:      "Updates processed, by matched route and outcome.",
	}, []string{"route", "outcome"})

	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "handler_duration_seconds",
		Help:      "Time spent handling one update, by matched route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	SendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "send_failures_total",
		Help:      "Outbound calls that failed, by error kind.",
	}, []string{"kind"})

	SessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_purged_total",
		Help:      "Expired session rows removed by the purge job.",
	})
)

// ObserveHandler records the outcome and latency of one handled update.
func ObserveHandler(route, outcome string, took time.Duration) {
	UpdatesHandled.WithLabelValues(route, outcome).Inc()
	HandlerDuration.WithLabelValues(route).Observe(took.Seconds())
}

// Serve starts the /metrics listener when cfg.Listen is set. The returned
// stop function shuts it down; it is a no-op when metrics are disabled.
func Serve(cfg coreconfig.MetricsConfig) (func(context.Context) error, error) {
	if cfg.Listen == "" {
		return func(context.Context) error { return nil }, nil
	}
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, err
	}
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "metrics", "metrics.serve.failed", logger.Err(err))
		}
	}()
	logger.Info(context.Background(), "metrics", "metrics.listen",
		slog.String("listen", ln.Addr().String()),
		slog.String("path", path),
	)
	return srv.Shutdown, nil
}
