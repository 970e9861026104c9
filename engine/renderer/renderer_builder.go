package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithSurfaceSize sets the surface size configured at construction. Defaults to 800x600.
//
// Parameters:
//   - width: the surface width in pixels
//   - height: the surface height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSurfaceSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = common.Coalesce(width, r.width)
		r.height = common.Coalesce(height, r.height)
	}
}

// WithClearColor sets the background colour behind the skybox.
func WithClearColor(color common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithAssets sets where shader and texture overrides are read from. Without it only the built-in
// shaders and generated textures are used.
//
// Parameters:
//   - assets: the asset source
//
// Returns:
//   - RendererBuilderOption: a function that applies the asset option to a renderer
func WithAssets(assets AssetSource) RendererBuilderOption {
	return func(r *renderer) {
		r.assets = assets
	}
}

// WithDebug sets whether the debug overlays start enabled.
func WithDebug(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.debug = enabled
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}

// WGPUBackendOption is a functional option applied to the WebGPU backend via NewWGPUBackend.
type WGPUBackendOption func(*wgpuRendererBackend)

// WithMSAA sets the multisample anti-aliasing sample count. Defaults to MSAA4x; invalid counts fall
// back to MSAA4x. Higher values (MSAA8x, MSAA16x) are adapter-dependent.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - WGPUBackendOption: a function that applies the MSAA option to the backend
func WithMSAA(count MSAASampleCount) WGPUBackendOption {
	return func(b *wgpuRendererBackend) {
		b.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - WGPUBackendOption: a function that applies the option to the backend
func WithForceSoftwareRenderer(force bool) WGPUBackendOption {
	return func(b *wgpuRendererBackend) {
		b.forceFallbackAdapter = force
	}
}

// WithBackendLogger sets the parent logger of the backend. Defaults to slog.Default().
func WithBackendLogger(logger *slog.Logger) WGPUBackendOption {
	return func(b *wgpuRendererBackend) {
		b.logger = logger
	}
}
