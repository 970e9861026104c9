package window

import "log/slog"

// WindowBuilderOption configures a window before it opens.
type WindowBuilderOption func(w *engineWindow)

func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested window size. On high-DPI displays the framebuffer, and so Width and
// Height, may come out larger.
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.width, w.height = width, height
		}
	}
}

// WithSizeLimits bounds interactive resizing.
//
// Parameters:
//   - minWidth, minHeight: the smallest size in pixels
//   - maxWidth, maxHeight: the largest size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithInput records events into an existing Input instead of a fresh one.
func WithInput(in *Input) WindowBuilderOption {
	return func(w *engineWindow) {
		if in != nil {
			w.input = in
		}
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		w.logger = logger
	}
}
