package loader

import "log/slog"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFlipVertical makes decoded textures bottom row first, for images authored for a
// bottom-left texture origin.
//
// Parameters:
//   - flip: true to flip every decoded texture vertically
//
// Returns:
//   - LoaderBuilderOption: a function that applies the flip option to a loader
func WithFlipVertical(flip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.flipVertical = flip
	}
}

// WithMaxTextureSize sets the largest width or height a decoded texture may have. Larger images are
// scaled down preserving their aspect ratio. Values below 1 keep the default.
//
// Parameters:
//   - size: the maximum dimension in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size option to a loader
func WithMaxTextureSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		if size > 0 {
			l.maxTextureSize = size
		}
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
