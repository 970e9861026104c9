package picking

import "log/slog"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(c *controller)

// WithSensitivity sets the factor applied to the back-projected drag displacement. Defaults to
// DefaultSensitivity.
//
// Parameters:
//   - sensitivity: the drag scale factor
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(c *controller) {
		c.sensitivity = sensitivity
	}
}

// WithGizmoDimensions overrides the gizmo proportions used for hit testing and drawing.
//
// Parameters:
//   - dims: the per-depth proportions
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithGizmoDimensions(dims GizmoDimensions) ControllerBuilderOption {
	return func(c *controller) {
		c.dims = dims
	}
}

// WithSelectionCallback registers a function called after every scene pick.
//
// Parameters:
//   - cb: the callback
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSelectionCallback(cb SelectionCallback) ControllerBuilderOption {
	return func(c *controller) {
		c.onSelect = cb
	}
}

// WithLogger sets the parent logger.
func WithLogger(logger *slog.Logger) ControllerBuilderOption {
	return func(c *controller) {
		c.logger = logger
	}
}
