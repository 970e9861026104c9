package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipCorrection remaps OpenGL clip depth (-w..w), as produced by mgl32.Perspective, to the WebGPU
// range (0..w). Pre-multiply it onto a projection matrix before uploading.
var ClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
// The returned slice aliases v.
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// ModelMatrix builds translate * scale for a uniformly scaled object.
func ModelMatrix(position mgl32.Vec3, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(mgl32.Scale3D(scale, scale, scale))
}

// AxisModelMatrix builds the transform that maps a unit +Y primitive onto a world axis at position.
// scale is applied in primitive space before the rotation, so scale.Y() stretches along the axis.
// Axis 0 is X, 1 is Y, 2 is Z.
func AxisModelMatrix(position mgl32.Vec3, axis int, scale mgl32.Vec3) mgl32.Mat4 {
	rot := mgl32.Ident4()
	switch axis {
	case 0:
		rot = mgl32.HomogRotate3DZ(-mgl32.DegToRad(90))
	case 2:
		rot = mgl32.HomogRotate3DX(mgl32.DegToRad(90))
	}
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
