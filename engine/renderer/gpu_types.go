package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of light slots in GPUFrameUniform. Further lights are ignored by the shaders.
const MaxLights = 4

// DrawUniformStride is the distance between consecutive per-draw uniforms in the dynamic uniform
// buffer. It equals the minimum uniform buffer offset alignment WebGPU guarantees.
const DrawUniformStride = 256

// GPUUniformSource declares the shared bind group layout every viewer program is compiled against.
// It is prepended to each program body.
//
//go:embed assets/uniforms.wgsl
var GPUUniformSource string

// GPULight is one point light slot.
// Size: 32 bytes (WGSL aligned).
type GPULight struct {
	Position mgl32.Vec4 // offset  0: world position, w unused (vec4<f32>)
	Color    mgl32.Vec4 // offset 16: linear colour, w unused (vec4<f32>)
}

// GPUFrameUniform is the group 0 uniform: camera data followed by the light table.
// Size: 224 bytes (WGSL aligned).
type GPUFrameUniform struct {
	Camera     camera.GPUCameraUniform // offset   0: view_proj + camera_position (80 bytes)
	Lights     [MaxLights]GPULight     // offset  80: light table (array<Light, 4>)
	LightCount uint32                  // offset 208: number of valid light slots (u32)
	_pad       [3]uint32               // offset 212: padding to 224 bytes
}

// NewGPUFrameUniform builds the frame uniform from the camera uniform and up to MaxLights lights.
//
// Parameters:
//   - cam: the camera uniform for this frame
//   - lights: the lights to upload, truncated to MaxLights
//
// Returns:
//   - GPUFrameUniform: the assembled uniform
func NewGPUFrameUniform(cam camera.GPUCameraUniform, lights []GPULight) GPUFrameUniform {
	u := GPUFrameUniform{Camera: cam}
	n := copy(u.Lights[:], lights)
	u.LightCount = uint32(n)
	return u
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := g.Camera.AppendTo(make([]byte, 0, g.Size()))
	buf = buf[:g.Size()]
	for i, light := range g.Lights {
		base := 80 + i*32
		putVec4(buf[base:], light.Position)
		putVec4(buf[base+16:], light.Color)
	}
	binary.LittleEndian.PutUint32(buf[208:], g.LightCount)
	return buf
}

// GPUDrawUniform is the group 1 uniform, bound with a dynamic offset per draw.
// Size: 80 bytes (WGSL aligned), placed at DrawUniformStride intervals.
type GPUDrawUniform struct {
	Model mgl32.Mat4 // offset  0: model matrix (mat4x4<f32>)
	Color mgl32.Vec4 // offset 64: tint colour (vec4<f32>)
}

// Size returns the size of the GPUDrawUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDrawUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	putVec4(buf[64:], g.Color)
	return buf
}

func putVec4(dst []byte, v mgl32.Vec4) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v[i]))
	}
}
