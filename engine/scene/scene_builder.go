package scene

import "log/slog"

// DefaultParallelThreshold is the object count at which CastRay starts fanning out across the
// scene's worker pool.
const DefaultParallelThreshold = 512

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene in the given order.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...Object) SceneBuilderOption {
	return func(s *scene) {
		s.pending = append(s.pending, objects...)
	}
}

// WithLogger sets the logger the scene derives its component logger from.
//
// Parameters:
//   - logger: the parent logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = logger
	}
}

// WithComputeWorkers sets the number of worker goroutines used by parallel ray casts.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithParallelThreshold sets the live object count at which CastRay switches from a sequential scan
// to the worker pool. Values below 1 are clamped to 1.
//
// Parameters:
//   - n: the object count threshold
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParallelThreshold(n int) SceneBuilderOption {
	return func(s *scene) {
		s.parallelThreshold = max(n, 1)
	}
}
