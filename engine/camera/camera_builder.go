package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = mgl32.DegToRad(degrees)
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width: viewport width
//   - height: viewport height
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithController attaches a controller to the camera. Without one the camera builds a default orbit
// controller.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
