package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithEntryPoints overrides the vs_main/fs_main entry point names.
//
// Parameters:
//   - vertex: the vertex stage function name
//   - fragment: the fragment stage function name
//
// Returns:
//   - PipelineBuilderOption: a function that sets both entry points
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntryPoint = vertex
		p.fragmentEntryPoint = fragment
	}
}

// WithDepth sets the depth state. Overlays and the skybox turn both off so they ignore the scene's
// depth.
//
// Parameters:
//   - test: compare fragments against the depth buffer
//   - write: store fragment depth
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth state
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithBlend turns alpha blending on. A nil state keeps the default source-over blend.
//
// Parameters:
//   - state: the blend equation, or nil
//
// Returns:
//   - PipelineBuilderOption: a function that enables blending
func WithBlend(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		if state != nil {
			p.blendState = state
		}
	}
}

// WithCullMode sets which faces are discarded. The skybox is viewed from inside and culls nothing.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology switches between triangle and line lists.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}
