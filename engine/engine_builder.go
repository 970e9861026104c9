package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, which reports every second with the renderer's stats.
//
// Parameters:
//   - p: the profiler to tick once per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithProfileInterval sets how often the default profiler reports. Ignored when WithProfiler is used.
func WithProfileInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profileInterval = interval
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
