package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a configuration name ("vsync" or "uncapped") to a PresentMode.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - PresentMode: the parsed mode
//   - bool: false if the name is not recognised
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync":
		return PresentModeVSync, true
	case "uncapped":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// Valid reports whether c is one of the defined sample counts.
func (c MSAASampleCount) Valid() bool {
	switch c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	default:
		return false
	}
}

// Mesh is an uploaded vertex and index buffer pair.
type Mesh interface {
	// Label returns the debug label the mesh was created with.
	Label() string

	// IndexCount returns the number of indices drawn.
	IndexCount() uint32

	// Topology returns the primitive topology the indices describe.
	Topology() common.Topology

	// Release frees the GPU buffers.
	Release()
}

// Texture is an uploaded RGBA8 texture together with whatever the backend needs to bind it.
type Texture interface {
	// Label returns the debug label the texture was created with.
	Label() string

	// Size returns the texture dimensions in pixels.
	Size() (width, height uint32)

	// Release frees the GPU texture.
	Release()
}

// Backend is the GPU API the Renderer drives. Resource creation may happen at any time; draws are
// only valid between BeginFrame and EndFrame, and Present must follow EndFrame.
type Backend interface {
	// ConfigureSurface (re)creates the swapchain and depth attachments for a new surface size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode applied on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the colour the main pass clears to.
	SetClearColor(color common.Color)

	// CreateMesh uploads geometry.
	//
	// Parameters:
	//   - label: a debug label
	//   - data: the vertices and indices to upload
	//
	// Returns:
	//   - Mesh: the uploaded mesh
	//   - error: an error if the buffers could not be created
	CreateMesh(label string, data common.MeshData) (Mesh, error)

	// CreateTexture uploads RGBA8 pixels.
	//
	// Parameters:
	//   - label: a debug label
	//   - data: the pixels to upload
	//
	// Returns:
	//   - Texture: the uploaded texture
	//   - error: an error if the texture could not be created
	CreateTexture(label string, data common.TextureData) (Texture, error)

	// RegisterPipeline compiles the program and stores the GPU pipeline on it via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the program description
	//
	// Returns:
	//   - error: an error if the shader module or pipeline could not be created
	RegisterPipeline(p pipeline.Pipeline) error

	// BeginFrame acquires the next surface texture and uploads the per-frame uniform.
	//
	// Parameters:
	//   - frame: the camera and light data for this frame
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame(frame GPUFrameUniform) error

	// Draw records one indexed draw for the current frame.
	//
	// Parameters:
	//   - p: a registered program
	//   - mesh: the geometry
	//   - texture: the texture bound to group 2
	//   - draw: the per-draw uniform
	//
	// Returns:
	//   - error: ErrNoFrame outside BeginFrame/EndFrame, or an error for an unregistered program
	Draw(p pipeline.Pipeline, mesh Mesh, texture Texture, draw GPUDrawUniform) error

	// EndFrame encodes the recorded draws and submits them to the GPU.
	EndFrame()

	// Present presents the surface and releases the frame's swapchain texture.
	Present()

	// Release frees every backend-owned GPU object.
	Release()
}
