package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the orbit state the Camera reads its view from: a target point, a yaw
// (azimuth) around world Y, an elevation above the target's horizontal plane, and a zoom level that
// sets the orbit distance to ZoomBase^level.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: target + distance along the orbit direction
	Position() mgl32.Vec3

	// Target returns the look-at point.
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point.
	//
	// Parameters:
	//   - target: the new pivot
	SetTarget(target mgl32.Vec3)

	// Radius returns the current orbit distance.
	Radius() float32

	// ZoomLevel returns the current zoom level.
	ZoomLevel() float32

	// Zoom moves the zoom level by steps, clamped to the controller's bounds. Positive steps zoom in.
	//
	// Parameters:
	//   - steps: scroll steps, usually the scroll wheel's y offset
	Zoom(steps float32)

	// Orbit rotates the camera around the target by a pointer offset in pixels. Elevation is clamped.
	//
	// Parameters:
	//   - dx: horizontal pointer offset
	//   - dy: vertical pointer offset
	Orbit(dx, dy float32)

	// Pan slides the target across the ground plane by a pointer offset in pixels, relative to the
	// camera's yaw. The step grows with the zoom level.
	//
	// Parameters:
	//   - dx: horizontal pointer offset
	//   - dy: vertical pointer offset
	Pan(dx, dy float32)

	// Azimuth returns the current horizontal angle around the Y axis in radians.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly.
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle above the target in radians.
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the controller's bounds.
	SetElevation(elevation float32)

	// Reset restores the state the controller was built with.
	Reset()
}
