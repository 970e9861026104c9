package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniform is the camera block at the start of the renderer's frame uniform, matching
// `view_proj` and `camera_position` in uniforms.wgsl.
// Size: 80 bytes (WGSL aligned).
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4 // offset  0: clip-corrected view-projection (mat4x4<f32>)
	CameraPosition mgl32.Vec3 // offset 64: eye position (vec3<f32>)
	_pad           float32    // offset 76
}

// Size returns the uniform size in bytes (80).
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// AppendTo appends the little-endian GPU layout of g to dst and returns the extended slice.
//
// Parameters:
//   - dst: the buffer to append to, usually the start of a larger uniform
//
// Returns:
//   - []byte: dst followed by 80 bytes of uniform data
func (g *GPUCameraUniform) AppendTo(dst []byte) []byte {
	for _, f := range g.ViewProj {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	for _, f := range g.CameraPosition {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return binary.LittleEndian.AppendUint32(dst, 0)
}

// Marshal returns the uniform as a standalone upload buffer.
func (g *GPUCameraUniform) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, g.Size()))
}
