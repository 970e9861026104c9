package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("shaded", "// wgsl")

	assert.Equal(t, "shaded", p.Key())
	assert.Equal(t, "// wgsl", p.Source())
	assert.Equal(t, DefaultVertexEntryPoint, p.VertexEntryPoint())
	assert.Equal(t, DefaultFragmentEntryPoint, p.FragmentEntryPoint())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.Pipeline())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("normals", "",
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithCullMode(wgpu.CullModeNone),
		WithDepth(false, false),
		WithBlend(nil),
		WithEntryPoints("vert", "frag"),
	)

	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.NotNil(t, p.BlendState(), "nil keeps the default blend")
	assert.Equal(t, "vert", p.VertexEntryPoint())
	assert.Equal(t, "frag", p.FragmentEntryPoint())
}

func TestPipelineReleaseIsIdempotent(t *testing.T) {
	p := NewPipeline("flat", "")

	p.Release()
	p.Release()

	assert.True(t, p.Released())
	assert.Nil(t, p.Pipeline())
}

func TestWithBlendReplacesState(t *testing.T) {
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
	}
	p := NewPipeline("glow", "", WithBlend(additive), WithFrontFace(wgpu.FrontFaceCW))

	assert.Same(t, additive, p.BlendState())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
}
