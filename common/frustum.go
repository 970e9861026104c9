package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a frustum plane in the form dot(Normal, p) + Distance = 0.
// Points with a positive signed distance are on the inner side.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the signed distance from p to the plane.
func (p Plane) SignedDistance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum holds the six inward-facing planes of a view volume.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts the frustum planes from a view-projection matrix with OpenGL clip depth
// (-w..w), as produced by mgl32.Perspective. Uses the Gribb/Hartmann method.
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return viewProj.Row(i)
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFrom(r3.Add(r0))
	f.Planes[FrustumRight] = planeFrom(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFrom(r3.Add(r1))
	f.Planes[FrustumTop] = planeFrom(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFrom(r3.Add(r2))
	f.Planes[FrustumFar] = planeFrom(r3.Sub(r2))
	return f
}

// planeFrom normalizes a raw plane row so the normal has unit length.
func planeFrom(v mgl32.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v.W()}
	if length := p.Normal.Len(); length > 0 {
		inv := 1 / length
		p.Normal = p.Normal.Mul(inv)
		p.Distance *= inv
	}
	return p
}

// ContainsSphere reports whether a bounding sphere is at least partly inside the frustum.
//
// Parameters:
//   - center: the sphere centre
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only when the sphere lies fully outside one of the planes
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}
