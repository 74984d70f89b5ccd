package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"chat-go/runtime"
)

// TelemetryWorker periodically logs a snapshot of the registry together
// with the server process footprint. Purely observational; it never
// mutates chat state.
type TelemetryWorker struct {
	log      *slog.Logger
	registry *runtime.Registry
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, registry *runtime.Registry, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, registry: registry, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("process introspection unavailable", "err", err)
		proc = nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry")
			return nil
		case <-ticker.C:
			stats := w.registry.Snapshot()
			attrs := []any{
				"peers", stats.PeerCount,
				"named", len(stats.Users),
				"history", stats.HistoryLen,
			}
			if proc != nil {
				if mem, err := proc.MemoryInfo(); err == nil {
					attrs = append(attrs, "rss_bytes", mem.RSS)
				}
				if cpu, err := proc.CPUPercent(); err == nil {
					attrs = append(attrs, "cpu_percent", cpu)
				}
			}
			w.log.Info("telemetry", attrs...)
		}
	}
}
