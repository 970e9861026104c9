package renderer

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloat(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestUniformSizes(t *testing.T) {
	var frame GPUFrameUniform
	var draw GPUDrawUniform
	assert.Equal(t, 224, frame.Size())
	assert.Equal(t, 80, draw.Size())
	assert.LessOrEqual(t, draw.Size(), DrawUniformStride)
}

func TestFrameUniformTruncatesLights(t *testing.T) {
	lights := make([]GPULight, MaxLights+2)
	for i := range lights {
		lights[i].Position = mgl32.Vec4{float32(i), 0, 0, 1}
	}

	frame := NewGPUFrameUniform(camera.GPUCameraUniform{}, lights)
	assert.Equal(t, uint32(MaxLights), frame.LightCount)
	assert.Equal(t, float32(MaxLights-1), frame.Lights[MaxLights-1].Position.X())

	frame = NewGPUFrameUniform(camera.GPUCameraUniform{}, lights[:1])
	assert.Equal(t, uint32(1), frame.LightCount)
}

func TestFrameUniformMarshalLayout(t *testing.T) {
	cam := camera.GPUCameraUniform{ViewProj: mgl32.Ident4(), CameraPosition: mgl32.Vec3{1, 2, 3}}
	frame := NewGPUFrameUniform(cam, []GPULight{
		{Position: mgl32.Vec4{4, 5, 6, 1}, Color: mgl32.Vec4{0.5, 0.25, 1, 0}},
		{Position: mgl32.Vec4{7, 8, 9, 1}},
	})

	buf := frame.Marshal()
	require.Len(t, buf, 224)
	assert.Equal(t, float32(1), readFloat(buf, 0), "view_proj[0][0]")
	assert.Equal(t, float32(2), readFloat(buf, 68), "camera_position.y")
	assert.Equal(t, float32(4), readFloat(buf, 80), "lights[0].position.x")
	assert.Equal(t, float32(0.25), readFloat(buf, 100), "lights[0].color.y")
	assert.Equal(t, float32(7), readFloat(buf, 112), "lights[1].position.x")
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[208:]))
}

func TestDrawUniformMarshalLayout(t *testing.T) {
	draw := GPUDrawUniform{Model: mgl32.Translate3D(1, 2, 3), Color: mgl32.Vec4{0.1, 0.2, 0.3, 1}}

	buf := draw.Marshal()
	require.Len(t, buf, 80)
	// column-major: the translation is the fourth column
	assert.Equal(t, float32(1), readFloat(buf, 48))
	assert.Equal(t, float32(3), readFloat(buf, 56))
	assert.Equal(t, float32(0.2), readFloat(buf, 68))
	assert.Equal(t, float32(1), readFloat(buf, 76))
}

func TestUniformSourceDeclaresGroups(t *testing.T) {
	for _, decl := range []string{"@group(0)", "@group(1)", "@group(2) @binding(0)", "@group(2) @binding(1)"} {
		assert.True(t, strings.Contains(GPUUniformSource, decl), decl)
	}
	for id, spec := range shaderTable {
		assert.Contains(t, spec.builtin, "fn vs_main", id.String())
		assert.Contains(t, spec.builtin, "fn fs_main", id.String())
	}
}
