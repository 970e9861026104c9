package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithZoomLevel sets the initial zoom level. The orbit distance is ZoomBase^level.
//
// Parameters:
//   - level: the zoom level
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom level
func WithZoomLevel(level float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = level
	}
}

// WithZoomBounds sets the zoom level bounds.
//
// Parameters:
//   - min: the closest zoom level
//   - max: the farthest zoom level
//
// Returns:
//   - CameraControllerOption: functional option to set the bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle above the target.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = level with the target)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithElevationBounds sets the allowed elevation range.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians (keep below pi/2 to avoid flipping over)
//
// Returns:
//   - CameraControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithTarget sets the look-at/pivot point.
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithOrbitSpeed sets the orbit rate in radians per pixel of pointer movement.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithPanSpeed sets the pan rate in world units per pixel per zoom level.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomStepScale sets how many zoom levels one scroll step moves.
func WithZoomStepScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomScale = scale
	}
}
