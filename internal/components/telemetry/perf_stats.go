package telemetry

import (
	"context"
	"runtime"
	"time"

	"addressfinder-backend/internal/components/assert"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const report_perf_stats_cpu = "perf_stats.cpu"

type perfStats struct {
	tel         API
	cpu         metric.Float64Gauge
	memory      metric.Int64Gauge
	liveObjects metric.Int64Gauge
	goroutines  metric.Int64Gauge
}

func newPerfStats(tel API) perfStats {
	meter := otel.Meter("addressfinder.perf_stats")
	cpuGauge, _ := meter.Float64Gauge("process.cpu_usage", metric.WithUnit("%"))
	memoryGauge, _ := meter.Int64Gauge("process.allocated", metric.WithUnit("MB"))
	liveObjectsGauge, _ := meter.Int64Gauge("process.live_objects")
	goroutineGauge, _ := meter.Int64Gauge("process.goroutines")

	return perfStats{
		tel:         tel,
		cpu:         cpuGauge,
		memory:      memoryGauge,
		liveObjects: liveObjectsGauge,
		goroutines:  goroutineGauge,
	}
}

// record samples the process once, cpu usage is measured since the previous call.
func (p perfStats) record(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	cpuUsage, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuUsage) > 0 {
		p.cpu.Record(ctx, cpuUsage[0])
	} else if err != nil {
		p.tel.ReportWarning(report_perf_stats_cpu, err)
	}

	p.memory.Record(ctx, int64(memStats.Alloc/1_000_000))
	p.liveObjects.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
	p.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}

// InstrumentPerfStats records process gauges every `interval` until `ctx` is done.
func InstrumentPerfStats(ctx context.Context, interval time.Duration, tel API) {
	assert.Positive("interval", interval)

	stats := newPerfStats(NewScopedAPI("telemetry", tel))
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats.record(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
