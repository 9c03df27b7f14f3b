package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Telemetry logs engine health on an interval: live sessions,
// goroutines, and process CPU/RSS.
type Telemetry struct {
	log      *slog.Logger
	interval time.Duration
	sessions func() int
}

func NewTelemetry(log *slog.Logger, interval time.Duration, sessions func() int) *Telemetry {
	return &Telemetry{log: log, interval: interval, sessions: sessions}
}

func (w *Telemetry) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu := selfStats(p)
			w.log.Info("engine stats",
				"sessions", w.sessions(),
				"goroutines", runtime.NumGoroutine(),
				"cpu_percent", cpu,
				"rss_bytes", rss,
			)
		}
	}
}

func selfStats(p *process.Process) (uint64, float64) {
	var rss uint64
	if memInfo, err := p.MemoryInfo(); err == nil {
		rss = memInfo.RSS
	}
	cpu, _ := p.CPUPercent()
	return rss, cpu
}
