package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults.
const (
	DefaultFov  float32 = 90
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov  float32 // vertical, radians
	near float32
	far  float32

	width  int
	height int

	controller CameraController
}

// Camera holds the perspective settings and the viewport size and derives its view from an attached
// CameraController. Matrices are rebuilt on every call, so controller changes are visible immediately.
// Window coordinates are in pixels from the top-left corner of the viewport.
type Camera interface {
	// Controller returns the camera's controller.
	//
	// Returns:
	//   - CameraController: the attached controller
	Controller() CameraController

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Aspect returns width / height of the viewport.
	Aspect() float32

	// SetViewport updates the viewport size in pixels. Non-positive sizes are ignored, as when the window
	// is minimised.
	//
	// Parameters:
	//   - width: viewport width
	//   - height: viewport height
	SetViewport(width, height int)

	// Viewport returns the viewport size in pixels.
	Viewport() (width, height int)

	// View returns the world-to-view matrix.
	View() mgl32.Mat4

	// Projection returns the perspective matrix with OpenGL clip depth.
	Projection() mgl32.Mat4

	// ViewProjection returns Projection * View.
	ViewProjection() mgl32.Mat4

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Forward returns the unit direction from the camera toward its target.
	Forward() mgl32.Vec3

	// Unproject maps a window position and a depth in [0, 1] (0 at the near plane) to world space.
	//
	// Parameters:
	//   - x: window x in pixels
	//   - y: window y in pixels
	//   - depth: normalized depth
	//
	// Returns:
	//   - mgl32.Vec3: the world-space point, or the camera position if the view is degenerate
	Unproject(x, y, depth float32) mgl32.Vec3

	// Ray returns the picking ray from the near plane through a window position.
	//
	// Parameters:
	//   - x: window x in pixels
	//   - y: window y in pixels
	//
	// Returns:
	//   - geometry.Ray: a ray with unit direction
	Ray(x, y float32) geometry.Ray

	// Frustum returns the current view frustum.
	Frustum() common.Frustum

	// Uniform returns the per-frame camera uniform with WebGPU clip depth.
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 90 degree vertical field of view, near 0.1, far 1000, an 800x600
// viewport and a default orbit controller.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    mgl32.DegToRad(DefaultFov),
		near:   DefaultNear,
		far:    DefaultFar,
		width:  800,
		height: 600,
	}

	for _, option := range options {
		option(c)
	}

	if c.controller == nil {
		c.controller = NewCameraController()
	}
	return c
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect()
}

func (c *cameraImpl) aspect() float32 {
	return float32(c.width) / float32(c.height)
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

func (c *cameraImpl) Viewport() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.controller.Position(), c.controller.Target(), c.up)
}

func (c *cameraImpl) Projection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.Perspective(c.fov, c.aspect(), c.near, c.far)
}

func (c *cameraImpl) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.controller.Position()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	return c.controller.Target().Sub(c.controller.Position()).Normalize()
}

func (c *cameraImpl) Unproject(x, y, depth float32) mgl32.Vec3 {
	width, height := c.Viewport()
	// Window y grows downward; UnProject expects it growing upward.
	win := mgl32.Vec3{x, float32(height) - y, depth}
	p, err := mgl32.UnProject(win, c.View(), c.Projection(), 0, 0, width, height)
	if err != nil {
		return c.Position()
	}
	return p
}

func (c *cameraImpl) Ray(x, y float32) geometry.Ray {
	near := c.Unproject(x, y, 0)
	far := c.Unproject(x, y, 1)
	return geometry.NewRay(near, far.Sub(near))
}

func (c *cameraImpl) Frustum() common.Frustum {
	return common.ExtractFrustum(c.ViewProjection())
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       common.ClipCorrection.Mul4(c.ViewProjection()),
		CameraPosition: c.Position(),
	}
}
