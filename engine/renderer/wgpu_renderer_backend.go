package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	vertexStride        = 32
	initialDrawCapacity = 64
)

// vertexLayout matches common.Vertex: position, normal, uv.
var vertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: vertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	},
}

type wgpuMesh struct {
	label    string
	vertex   *wgpu.Buffer
	index    *wgpu.Buffer
	count    uint32
	topology common.Topology
}

func (m *wgpuMesh) Label() string { return m.label }
func (m *wgpuMesh) IndexCount() uint32 { return m.count }
func (m *wgpuMesh) Topology() common.Topology { return m.topology }

func (m *wgpuMesh) Release() {
	if m.vertex != nil {
		m.vertex.Release()
		m.vertex = nil
	}
	if m.index != nil {
		m.index.Release()
		m.index = nil
	}
}

type wgpuTexture struct {
	label         string
	width, height uint32
	texture       *wgpu.Texture
	view          *wgpu.TextureView
	bindGroup     *wgpu.BindGroup
}

func (t *wgpuTexture) Label() string { return t.label }
func (t *wgpuTexture) Size() (uint32, uint32) { return t.width, t.height }

func (t *wgpuTexture) Release() {
	if t.bindGroup != nil {
		t.bindGroup.Release()
		t.bindGroup = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// recordedDraw is a draw captured between BeginFrame and EndFrame. Draws are encoded together at
// EndFrame so every per-draw uniform can be uploaded with a single buffer write.
type recordedDraw struct {
	pipeline *wgpu.RenderPipeline
	mesh     *wgpuMesh
	texture  *wgpuTexture
	uniform  GPUDrawUniform
}

type wgpuRendererBackend struct {
	mu     *sync.Mutex
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	forceFallbackAdapter bool

	// Shared layout: group 0 frame uniform, group 1 per-draw uniform (dynamic offset), group 2 texture.
	frameLayout    *wgpu.BindGroupLayout
	drawLayout     *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	sampler        *wgpu.Sampler

	frameBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	drawBuffer     *wgpu.Buffer
	drawBindGroup  *wgpu.BindGroup
	drawCapacity   int

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	draws        []recordedDraw
}

var _ Backend = &wgpuRendererBackend{}

// NewWGPUBackend creates the WebGPU backend for a window surface. Must be called from the thread that
// owns the window.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - options: functional options configuring adapter selection and MSAA
//
// Returns:
//   - Backend: the backend
//   - error: an error if no adapter or device could be obtained
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...WGPUBackendOption) (Backend, error) {
	runtime.LockOSThread()

	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	}
	for _, opt := range options {
		opt(b)
	}
	b.logger = logging.Component(b.logger, "wgpu")
	if !b.sampleCount.Valid() {
		b.logger.Warn("unsupported MSAA sample count, using 4x", "samples", uint32(b.sampleCount))
		b.sampleCount = MSAA4x
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	limits := wgpu.DefaultLimits()
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "Viewer Device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: limits},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if err := b.createSharedLayout(); err != nil {
		return nil, err
	}
	b.logger.Info("gpu ready", "msaa", uint32(b.sampleCount), "fallback", b.forceFallbackAdapter)
	return b, nil
}

// createSharedLayout builds the bind group layouts, pipeline layout, sampler and uniform buffers every
// program shares.
func (b *wgpuRendererBackend) createSharedLayout() error {
	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return fmt.Errorf("frame layout: %w", err)
	}

	drawSize := (&GPUDrawUniform{}).Size()
	b.drawLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   uint64(drawSize),
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("draw layout: %w", err)
	}

	b.textureLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("texture layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Viewer Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.drawLayout, b.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Viewer Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	frameSize := (&GPUFrameUniform{}).Size()
	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uint64(frameSize),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("frame buffer: %w", err)
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Frame Bind Group",
		Layout:  b.frameLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: b.frameBuffer, Size: wgpu.WholeSize}},
	})
	if err != nil {
		return fmt.Errorf("frame bind group: %w", err)
	}

	return b.growDrawBuffer(initialDrawCapacity)
}

// growDrawBuffer replaces the dynamic per-draw uniform buffer with one holding capacity draws.
func (b *wgpuRendererBackend) growDrawBuffer(capacity int) error {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Draw Uniform Buffer",
		Size:  uint64(capacity * DrawUniformStride),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("draw buffer: %w", err)
	}
	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Draw Bind Group",
		Layout: b.drawLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Size:    uint64((&GPUDrawUniform{}).Size()),
		}},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("draw bind group: %w", err)
	}

	if b.drawBindGroup != nil {
		b.drawBindGroup.Release()
	}
	if b.drawBuffer != nil {
		b.drawBuffer.Release()
	}
	b.drawBuffer, b.drawBindGroup, b.drawCapacity = buf, group, capacity
	return nil
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if msaaEnabled {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       b.msaaTextureView, // nil when MSAA is off; set in EndFrame
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    storeOp,
			ClearValue: b.clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	b.logger.Debug("surface configured", "width", width, "height", height)
}

func (b *wgpuRendererBackend) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) SetClearColor(color common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: float64(color[0]), G: float64(color[1]), B: float64(color[2]), A: float64(color[3])}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackend) CreateMesh(label string, data common.MeshData) (Mesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return nil, fmt.Errorf("mesh %s has no geometry", label)
	}

	vertexData := common.SliceToBytes(data.Vertices)
	vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vertex, 0, vertexData)

	indexData := common.SliceToBytes(data.Indices)
	index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertex.Release()
		return nil, err
	}
	b.queue.WriteBuffer(index, 0, indexData)

	return &wgpuMesh{
		label:    label,
		vertex:   vertex,
		index:    index,
		count:    uint32(len(data.Indices)),
		topology: data.Topology,
	}, nil
}

func (b *wgpuRendererBackend) CreateTexture(label string, data common.TextureData) (Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if data.Width == 0 || data.Height == 0 || len(data.Pixels) != int(data.Width*data.Height*4) {
		return nil, fmt.Errorf("texture %s: %dx%d with %d bytes is not RGBA8", label, data.Width, data.Height, len(data.Pixels))
	}

	size := wgpu.Extent3D{Width: data.Width, Height: data.Height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&size,
	)

	result := &wgpuTexture{label: label, width: data.Width, height: data.Height, texture: tex}
	result.view, err = tex.CreateView(nil)
	if err != nil {
		result.Release()
		return nil, err
	}
	result.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: result.view},
			{Binding: 1, Sampler: b.sampler},
		},
	})
	if err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}

func (b *wgpuRendererBackend) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering pipelines")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          p.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: p.Source()},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackend) BeginFrame(frame GPUFrameUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface image still held means the previous frame was never presented.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}
	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	b.queue.WriteBuffer(b.frameBuffer, 0, frame.Marshal())
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.draws = b.draws[:0]
	return nil
}

func (b *wgpuRendererBackend) Draw(p pipeline.Pipeline, mesh Mesh, texture Texture, draw GPUDrawUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return ErrNoFrame
	}

	rp := p.Pipeline()
	if rp == nil {
		return fmt.Errorf("program %s is not registered", p.Key())
	}
	m, ok := mesh.(*wgpuMesh)
	if !ok || m.vertex == nil {
		return fmt.Errorf("mesh %s was not created by this backend", mesh.Label())
	}
	t, ok := texture.(*wgpuTexture)
	if !ok || t.bindGroup == nil {
		return fmt.Errorf("texture %s was not created by this backend", texture.Label())
	}
	if topologyOf(m.topology) != p.Topology() {
		return fmt.Errorf("mesh %s topology does not match program %s", m.label, p.Key())
	}

	b.draws = append(b.draws, recordedDraw{pipeline: rp, mesh: m, texture: t, uniform: draw})
	return nil
}

func (b *wgpuRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	if len(b.draws) > b.drawCapacity {
		capacity := b.drawCapacity
		for capacity < len(b.draws) {
			capacity *= 2
		}
		if err := b.growDrawBuffer(capacity); err != nil {
			b.logger.Error("could not grow draw buffer, dropping draws", "draws", len(b.draws), "error", err)
			b.draws = b.draws[:b.drawCapacity]
		}
	}

	if len(b.draws) > 0 {
		uniforms := make([]byte, len(b.draws)*DrawUniformStride)
		for i := range b.draws {
			copy(uniforms[i*DrawUniformStride:], b.draws[i].uniform.Marshal())
		}
		b.queue.WriteBuffer(b.drawBuffer, 0, uniforms)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		b.logger.Error("could not create command encoder", "error", err)
		return
	}
	defer encoder.Release()

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = b.frameView
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = b.frameView
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.frameBindGroup, nil)
	for i, d := range b.draws {
		pass.SetPipeline(d.pipeline)
		pass.SetBindGroup(1, b.drawBindGroup, []uint32{uint32(i * DrawUniformStride)})
		pass.SetBindGroup(2, d.texture.bindGroup, nil)
		pass.SetVertexBuffer(0, d.mesh.vertex, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(d.mesh.count, 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		b.logger.Error("could not finish frame", "error", err)
		return
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.draws = b.draws[:0]
}

func (b *wgpuRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseAttachments()
	if b.drawBindGroup != nil {
		b.drawBindGroup.Release()
		b.drawBuffer.Release()
	}
	b.frameBindGroup.Release()
	b.frameBuffer.Release()
	b.sampler.Release()
	b.pipelineLayout.Release()
	b.textureLayout.Release()
	b.drawLayout.Release()
	b.frameLayout.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}

func topologyOf(t common.Topology) wgpu.PrimitiveTopology {
	switch t {
	case common.TopologyLines:
		return wgpu.PrimitiveTopologyLineList
	case common.TopologyTriangles:
		return wgpu.PrimitiveTopologyTriangleList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}
