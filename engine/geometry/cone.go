package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cone is a finite right circular cone. Axis points from the apex toward the base.
type Cone struct {
	Apex   mgl32.Vec3
	Axis   mgl32.Vec3
	Height float32
	Radius float32
}

var _ Shape = Cone{}

func (c Cone) Intersect(ray Ray) (float32, bool) {
	return RayCone(ray, c.Apex, c.Axis, c.Height, c.Radius)
}

// RayCone intersects a ray with the lateral surface of a finite cone.
//
// The half-angle is atan(baseRadius/height). The implicit double-nappe equation
// (dot(p-apex, axis))² = |p-apex|² cos²θ is solved as a quadratic in t. A root is accepted only when
// its point lies on the nappe that opens along axisDir (non-negative axial offset from the apex) and
// no farther from the apex than the slant length.
//
// Parameters:
//   - ray: the ray (unit direction)
//   - apex: the cone tip
//   - axisDir: unit direction from the apex toward the base
//   - height: distance from apex to base along the axis
//   - baseRadius: radius of the base disc
//
// Returns:
//   - float32: the nearest accepted hit parameter
//   - bool: true on a hit
func RayCone(ray Ray, apex, axisDir mgl32.Vec3, height, baseRadius float32) (float32, bool) {
	theta := math32.Atan(baseRadius / height)
	cosT := math32.Cos(theta)
	cos2 := cosT * cosT

	co := ray.Origin.Sub(apex)
	dv := ray.Direction.Dot(axisDir)
	cov := co.Dot(axisDir)

	a := dv*dv - cos2
	b := 2 * (dv*cov - ray.Direction.Dot(co)*cos2)
	c := cov*cov - co.Dot(co)*cos2

	slant2 := height*height + baseRadius*baseRadius
	accept := func(t float32) bool {
		if t < 0 {
			return false
		}
		offset := ray.At(t).Sub(apex)
		if offset.Dot(axisDir) < 0 {
			return false
		}
		return offset.Dot(offset) <= slant2
	}

	// Direction parallel to a generator line: the quadratic degenerates to b*t + c = 0.
	if a == 0 {
		if b == 0 {
			return 0, false
		}
		t := -c / b
		if accept(t) {
			return t, true
		}
		return 0, false
	}

	det := b*b - 4*a*c
	if det < 0 {
		return 0, false
	}

	s := math32.Sqrt(det)
	t0 := (-b - s) / (2 * a)
	t1 := (-b + s) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if accept(t0) {
		return t0, true
	}
	if accept(t1) {
		return t1, true
	}
	return 0, false
}
