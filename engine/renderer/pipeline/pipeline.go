package pipeline

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultVertexEntryPoint is the vertex stage entry point every viewer shader exports.
	DefaultVertexEntryPoint = "vs_main"

	// DefaultFragmentEntryPoint is the fragment stage entry point every viewer shader exports.
	DefaultFragmentEntryPoint = "fs_main"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the WGSL program source, the fixed-function state used when the backend builds the
// GPU pipeline, and the created GPU object.
type pipeline struct {
	mu *sync.Mutex

	// key identifies the program in logs and GPU object labels
	key    string
	source string

	vertexEntryPoint   string
	fragmentEntryPoint string

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	blendState        *wgpu.BlendState

	renderPipeline *wgpu.RenderPipeline
	released       bool
}

// Pipeline describes one render program: a single WGSL module holding both stages plus the
// primitive, depth and blend state it is drawn with. The backend turns it into a GPU render
// pipeline via SetRenderPipeline; Release frees that object when the program leaves the shader cache.
type Pipeline interface {
	// Key returns the label of this program.
	//
	// Returns:
	//   - string: the program key
	Key() string

	// Source returns the WGSL source containing both entry points.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the vertex stage function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage function.
	FragmentEntryPoint() string

	// DepthTestEnabled returns whether fragments are depth tested.
	// A disabled test still keeps the depth attachment but compares with Always.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writes are enabled
	DepthWriteEnabled() bool

	// BlendEnabled returns whether alpha blending is enabled.
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	BlendState() *wgpu.BlendState

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology the program draws with.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: e.g. wgpu.PrimitiveTopologyTriangleList
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order that counts as front facing.
	FrontFace() wgpu.FrontFace

	// Pipeline returns the created GPU render pipeline, or nil before the backend registered it
	// or after Release.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU object
	Pipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the GPU render pipeline created for this program.
	//
	// Parameters:
	//   - rp: the WebGPU render pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Released reports whether Release has been called.
	Released() bool

	// Release frees the GPU render pipeline. Calling it more than once is a no-op.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a triangle-list program with depth test and depth write enabled, back-face
// culling, CCW front faces and blending off.
//
// Parameters:
//   - key: the program label
//   - source: the WGSL source holding both entry points
//   - opts: functional options overriding the defaults
//
// Returns:
//   - Pipeline: the program description, not yet registered with a backend
func NewPipeline(key, source string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:                 &sync.Mutex{},
		key:                key,
		source:             source,
		vertexEntryPoint:   DefaultVertexEntryPoint,
		fragmentEntryPoint: DefaultFragmentEntryPoint,
		depthTestEnabled:   true,
		depthWriteEnabled:  true,
		cullMode:           wgpu.CullModeBack,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		frontFace:          wgpu.FrontFaceCCW,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderPipeline = rp
}

func (p *pipeline) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return
	}
	p.released = true
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
