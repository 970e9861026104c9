package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is a solid sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

var _ Shape = Sphere{}

func (s Sphere) Intersect(ray Ray) (float32, bool) {
	return RaySphere(ray, s.Center, s.Radius)
}

// RaySphere intersects a ray with a sphere by solving |o - c + t*d|² = r² for t.
// A negative discriminant is a miss, as is a sphere lying entirely behind the origin.
// When the origin is inside the sphere the far root is reported.
//
// Parameters:
//   - ray: the ray (unit direction)
//   - center: sphere center
//   - radius: sphere radius
//
// Returns:
//   - float32: the smallest non-negative root
//   - bool: true on a hit
func RaySphere(ray Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	v := ray.Origin.Sub(center)
	b := v.Dot(ray.Direction)
	c := v.Dot(v) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	s := math32.Sqrt(disc)
	tNear := -b - s
	tFar := -b + s

	if tFar < 0 {
		return 0, false
	}
	if tNear >= 0 {
		return tNear, true
	}
	return tFar, true
}
