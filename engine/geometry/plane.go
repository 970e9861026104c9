package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

var _ Shape = Plane{}

func (p Plane) Intersect(ray Ray) (float32, bool) {
	return RayPlane(ray, p.Point, p.Normal)
}

// RayPlane solves t = dot(point - origin, normal) / dot(normal, direction).
// A ray parallel to the plane (zero denominator) misses, and so does a plane behind the origin.
//
// Parameters:
//   - ray: the ray (unit direction)
//   - point: any point on the plane
//   - normal: the plane normal (either orientation)
//
// Returns:
//   - float32: the hit parameter
//   - bool: true on a hit with t >= 0
func RayPlane(ray Ray, point, normal mgl32.Vec3) (float32, bool) {
	denom := normal.Dot(ray.Direction)
	if !(math32.Abs(denom) > 0) {
		return 0, false
	}

	t := point.Sub(ray.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
