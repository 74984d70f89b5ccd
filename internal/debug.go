package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsProvider returns a point-in-time snapshot to expose on /stats.
type StatsProvider func() any

// DebugServer exposes health, stats and Prometheus metrics over HTTP. It
// lives next to the chat listener and never touches chat state directly.
type DebugServer struct {
	log   *slog.Logger
	port  int
	stats StatsProvider
}

func NewDebugServer(log *slog.Logger, port int, stats StatsProvider) *DebugServer {
	return &DebugServer{log: log, port: port, stats: stats}
}

func (d *DebugServer) Run(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(d.stats()); err != nil {
			d.log.Warn("stats encoding failed", "err", err)
		}
	})
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", d.port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	d.log.Info("debug server listening", "port", d.port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
