package picking

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis is a world axis the gizmo can constrain a drag to.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the gizmo axes in evaluation order. Earlier axes win exact ties.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Vector returns the axis as a unit vector.
func (a Axis) Vector() mgl32.Vec3 {
	var v mgl32.Vec3
	v[a] = 1
	return v
}

// GizmoDimensions are the gizmo proportions per unit of camera depth.
type GizmoDimensions struct {
	ShaftLength float32
	ShaftRadius float32
	HeadHeight  float32
	HeadRadius  float32
}

// DefaultGizmoDimensions keeps the arrows at roughly a sixth of the view height with a 90 degree fov.
var DefaultGizmoDimensions = GizmoDimensions{
	ShaftLength: 0.15,
	ShaftRadius: 0.006,
	HeadHeight:  0.04,
	HeadRadius:  0.015,
}

// Gizmo is the three-arrow translate widget centred on the selected object. It is derived from the
// selection and the camera every time it is needed and holds no state of its own.
type Gizmo struct {
	Center     mgl32.Vec3
	Scale      float32
	Dimensions GizmoDimensions
}

// NewGizmo builds a gizmo at center scaled by its depth along the camera's view direction, so it keeps a
// constant size on screen.
//
// Parameters:
//   - center: the selected object's position
//   - dims: the per-depth proportions
//   - cameraPos: the camera position
//   - cameraForward: the camera's unit view direction
//
// Returns:
//   - Gizmo: the scaled gizmo
func NewGizmo(center mgl32.Vec3, dims GizmoDimensions, cameraPos, cameraForward mgl32.Vec3) Gizmo {
	return Gizmo{
		Center:     center,
		Scale:      center.Sub(cameraPos).Dot(cameraForward),
		Dimensions: dims,
	}
}

// ShaftLength returns the world-space shaft length.
func (g Gizmo) ShaftLength() float32 { return g.Dimensions.ShaftLength * g.Scale }

// ShaftRadius returns the world-space shaft radius.
func (g Gizmo) ShaftRadius() float32 { return g.Dimensions.ShaftRadius * g.Scale }

// HeadHeight returns the world-space arrowhead height.
func (g Gizmo) HeadHeight() float32 { return g.Dimensions.HeadHeight * g.Scale }

// HeadRadius returns the world-space arrowhead base radius.
func (g Gizmo) HeadRadius() float32 { return g.Dimensions.HeadRadius * g.Scale }

// Volume returns the hit volume of one arrow: the shaft cylinder from the centre plus the cone whose tip
// sits one head height past the shaft end.
func (g Gizmo) Volume(axis Axis) geometry.Union {
	dir := axis.Vector()
	length := g.ShaftLength()
	head := g.HeadHeight()
	return geometry.Union{
		geometry.Cylinder{
			Base:   g.Center,
			Top:    g.Center.Add(dir.Mul(length)),
			Radius: g.ShaftRadius(),
		},
		geometry.Cone{
			Apex:   g.Center.Add(dir.Mul(length + head)),
			Axis:   dir.Mul(-1),
			Height: head,
			Radius: g.HeadRadius(),
		},
	}
}

// Hit tests the ray against all three arrows and returns the axis with the smallest hit parameter.
// A gizmo at or behind the camera plane cannot be hit.
//
// Parameters:
//   - ray: the picking ray
//
// Returns:
//   - Axis: the hit axis
//   - float32: the hit parameter
//   - bool: true if any arrow is hit
func (g Gizmo) Hit(ray geometry.Ray) (Axis, float32, bool) {
	if !(g.Scale > 0) {
		return AxisX, 0, false
	}

	best := AxisX
	var bestT float32
	found := false
	for _, axis := range Axes {
		t, ok := g.Volume(axis).Intersect(ray)
		if ok && (!found || t < bestT) {
			best, bestT, found = axis, t, true
		}
	}
	return best, bestT, found
}
