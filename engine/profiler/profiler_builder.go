package profiler

import (
	"log/slog"
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are logged. Non-positive values keep the 1 second default.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithAttrSource adds a source of extra attributes appended to every report.
//
// Parameters:
//   - source: called once per report
//
// Returns:
//   - ProfilerBuilderOption: a function that registers the source on a profiler
func WithAttrSource(source AttrSource) ProfilerBuilderOption {
	return func(p *Profiler) {
		if source != nil {
			p.sources = append(p.sources, source)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}
