package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CylinderRoots holds both roots of the infinite cylinder quadratic.
// Each root carries its own validity flag because one may lie behind the ray origin
// while the other does not. A tangential hit reports the same root in both slots.
type CylinderRoots struct {
	T0, T1         float32
	Valid0, Valid1 bool
}

// Nearest returns the smallest valid root.
//
// Returns:
//   - float32: the nearest valid root
//   - bool: false if neither root is valid
func (r CylinderRoots) Nearest() (float32, bool) {
	switch {
	case r.Valid0 && r.Valid1:
		return math32.Min(r.T0, r.T1), true
	case r.Valid0:
		return r.T0, true
	case r.Valid1:
		return r.T1, true
	default:
		return 0, false
	}
}

// RayInfiniteCylinder intersects a ray with the infinite cylinder of the given radius around the
// line through axisPoint along axisDir. The ray direction and the origin offset are projected onto
// the plane perpendicular to the axis and the resulting quadratic is solved.
// A ray parallel to the axis has no lateral roots.
//
// Parameters:
//   - ray: the ray (unit direction)
//   - axisPoint: any point on the cylinder axis
//   - axisDir: unit axis direction
//   - radius: cylinder radius
//
// Returns:
//   - CylinderRoots: both roots (T0 <= T1) with validity flags (t >= 0)
func RayInfiniteCylinder(ray Ray, axisPoint, axisDir mgl32.Vec3, radius float32) CylinderRoots {
	delta := ray.Origin.Sub(axisPoint)
	dPerp := ray.Direction.Sub(axisDir.Mul(ray.Direction.Dot(axisDir)))
	oPerp := delta.Sub(axisDir.Mul(delta.Dot(axisDir)))

	a := dPerp.Dot(dPerp)
	b := 2 * dPerp.Dot(oPerp)
	c := oPerp.Dot(oPerp) - radius*radius

	if a == 0 {
		return CylinderRoots{}
	}

	det := b*b - 4*a*c
	if det < 0 {
		return CylinderRoots{}
	}
	if det == 0 {
		t := -b / (2 * a)
		return CylinderRoots{T0: t, T1: t, Valid0: t >= 0, Valid1: t >= 0}
	}

	s := math32.Sqrt(det)
	t0 := (-b - s) / (2 * a)
	t1 := (-b + s) / (2 * a)
	return CylinderRoots{T0: t0, T1: t1, Valid0: t0 >= 0, Valid1: t1 >= 0}
}

// Cylinder is a capped cylinder between the centers of its two end discs.
type Cylinder struct {
	Base   mgl32.Vec3
	Top    mgl32.Vec3
	Radius float32
}

var _ Shape = Cylinder{}

func (c Cylinder) Intersect(ray Ray) (float32, bool) {
	return RayCylinder(ray, c.Base, c.Top, c.Radius)
}

// RayCylinder intersects a ray with a capped cylinder. Lateral roots from the infinite cylinder
// count only when the hit point lies between the two cap planes; cap-plane roots count only when
// the hit point lies inside the cap disc. The nearest of the (up to four) candidates is reported.
//
// Parameters:
//   - ray: the ray (unit direction)
//   - base: center of the first cap
//   - top: center of the second cap
//   - radius: cylinder radius
//
// Returns:
//   - float32: the nearest valid hit parameter
//   - bool: true on a hit
func RayCylinder(ray Ray, base, top mgl32.Vec3, radius float32) (float32, bool) {
	axis := top.Sub(base).Normalize()

	var best float32
	hit := false
	consider := func(t float32) {
		if !hit || t < best {
			best = t
			hit = true
		}
	}

	roots := RayInfiniteCylinder(ray, base, axis, radius)
	for _, r := range [2]struct {
		t     float32
		valid bool
	}{{roots.T0, roots.Valid0}, {roots.T1, roots.Valid1}} {
		if !r.valid {
			continue
		}
		p := ray.At(r.t)
		if p.Sub(base).Dot(axis) >= 0 && p.Sub(top).Dot(axis) <= 0 {
			consider(r.t)
		}
	}

	r2 := radius * radius
	for _, end := range [2]struct {
		center, normal mgl32.Vec3
	}{{base, axis.Mul(-1)}, {top, axis}} {
		t, ok := RayPlane(ray, end.center, end.normal)
		if !ok {
			continue
		}
		d := ray.At(t).Sub(end.center)
		if d.Dot(d) <= r2 {
			consider(t)
		}
	}

	return best, hit
}
