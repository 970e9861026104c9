package profiler

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
)

// AttrSource supplies extra attributes (cache sizes, draw counts) for each report.
type AttrSource func() []slog.Attr

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logger  *slog.Logger
	now     func() time.Time
	sources []AttrSource
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: a variadic list of ProfilerBuilderOption functions to configure the Profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.logger = logging.Component(p.logger, "profiler")
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory, plus the
// attributes of every AttrSource.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	attrs := []slog.Attr{
		slog.Float64("fps", fps),
		slog.Float64("heap_mb", allocMB),
		slog.Float64("alloc_rate_mb_s", allocRateMB),
		slog.Group("gc",
			slog.Uint64("count", uint64(gcCount)),
			slog.Uint64("last_pause_us", lastPauseUs),
			slog.Uint64("max_pause_us", maxPauseUs),
		),
		slog.Float64("sys_mb", sysMB),
	}
	for _, source := range p.sources {
		attrs = append(attrs, source()...)
	}
	p.logger.LogAttrs(context.Background(), slog.LevelInfo, "frame stats", attrs...)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Interval returns how often Tick reports.
func (p *Profiler) Interval() time.Duration {
	return p.updateInterval
}
