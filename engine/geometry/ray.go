// Package geometry implements single-precision ray intersection tests against the analytic
// shapes used for picking: spheres, planes, infinite and capped cylinders, and cones.
//
// Every routine expects a unit-length ray direction and positive shape dimensions. These are
// preconditions and are not checked at runtime. A miss is reported as an ordinary false result;
// a hit reports the smallest non-negative ray parameter t.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin and extending along Direction.
// Direction must already be normalized; intersection routines do not renormalize it.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay builds a Ray from an origin and an arbitrary non-zero direction, normalizing the direction.
//
// Parameters:
//   - origin: the ray origin in world space
//   - direction: the ray direction (any non-zero length)
//
// Returns:
//   - Ray: the ray with a unit-length direction
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point origin + t*direction.
//
// Parameters:
//   - t: the ray parameter
//
// Returns:
//   - mgl32.Vec3: the point on the ray
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Shape is any volume a ray can be tested against.
type Shape interface {
	// Intersect tests the ray against the shape.
	//
	// Parameters:
	//   - ray: the ray to test (unit direction)
	//
	// Returns:
	//   - float32: the smallest non-negative hit parameter
	//   - bool: false if the ray misses
	Intersect(ray Ray) (float32, bool)
}

// Union is a compound shape whose hit is the nearest hit among its members.
// On an exact tie the earlier member wins.
type Union []Shape

var _ Shape = Union{}

func (u Union) Intersect(ray Ray) (float32, bool) {
	var best float32
	hit := false
	for _, s := range u {
		t, ok := s.Intersect(ray)
		if !ok {
			continue
		}
		if !hit || t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}
