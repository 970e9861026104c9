// Package renderer draws the viewer scene through a GPU Backend, requesting every mesh, program and
// texture from per-kind resource caches keyed by small integer ids.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/cache"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/picking"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoFrame is returned when a draw is issued outside BeginFrame/EndFrame.
var ErrNoFrame = errors.New("renderer: no frame in progress")

const skyboxScale = 500

var (
	axisColors = [3]common.Color{
		{0.9, 0.2, 0.2, 1},
		{0.2, 0.85, 0.3, 1},
		{0.25, 0.4, 0.95, 1},
	}
	activeAxisColor = common.Color{1, 0.85, 0.2, 1}
	selectionTint   = mgl32.Vec3{1, 0.75, 0.3}
)

// DrawCommand is one draw request. Every resource is named by id and fetched from its cache.
type DrawCommand struct {
	Mesh    MeshID
	Program ShaderID
	Texture TextureID
	Model   mgl32.Mat4
	Color   common.Color
}

// Frame is everything Render needs for one frame.
type Frame struct {
	Camera camera.GPUCameraUniform
	// Objects are drawn in order; callers pass them already frustum culled.
	Objects []scene.Object
	// Lights lights the frame. When nil the lights among Objects are used.
	Lights []GPULight
	// Gizmo is nil when nothing is selected.
	Gizmo    *picking.Gizmo
	Dragging bool
	DragAxis picking.Axis
}

// Stats summarises the renderer's caches and the most recent frame.
type Stats struct {
	Meshes   int
	Shaders  int
	Textures int
	Drawn    int
	Skipped  int
}

type renderer struct {
	mu *sync.Mutex

	backend Backend
	logger  *slog.Logger
	assets  AssetSource

	meshes   cache.Cache[MeshID, Mesh]
	shaders  cache.Cache[ShaderID, pipeline.Pipeline]
	textures cache.Cache[TextureID, Texture]

	debug   bool
	inFrame bool
	drawn   int
	skipped int

	// Pre-creation config collected from builder options
	width, height      int
	pendingPresentMode *PresentMode
	clearColor         common.Color
}

// Renderer defines the interface for the rendering system.
//
// Resources are never created up front: the first draw that names a mesh, program or texture creates
// it through the matching cache, and Sweep releases whatever the last frame did not use. A draw whose
// resource cannot be created is skipped and the frame carries on.
type Renderer interface {
	// Resize reconfigures the surface for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Debug reports whether debug overlays (normals, coordinate system) are drawn.
	Debug() bool

	// SetDebug enables or disables the debug overlays.
	SetDebug(enabled bool)

	// BeginFrame starts a frame.
	//
	// Parameters:
	//   - cam: the camera uniform for this frame
	//   - lights: the lights uploaded with it, at most MaxLights are used
	//
	// Returns:
	//   - error: an error if the backend could not acquire a surface texture
	BeginFrame(cam camera.GPUCameraUniform, lights []GPULight) error

	// Draw requests the command's resources from the caches and records the draw.
	//
	// Parameters:
	//   - cmd: the draw to record
	//
	// Returns:
	//   - bool: false if the draw was skipped because a resource was unavailable or no frame is open
	Draw(cmd DrawCommand) bool

	// EndFrame submits and presents the frame.
	EndFrame()

	// Render draws a whole frame: skybox, objects, debug overlays and the gizmo.
	//
	// Parameters:
	//   - frame: the frame description
	//
	// Returns:
	//   - error: an error if the frame could not be started
	Render(frame Frame) error

	// Sweep evicts every resource not used since the previous Sweep. Call once per frame after EndFrame.
	//
	// Returns:
	//   - int: the number of resources released
	Sweep() int

	// Invalidate drops the cached resources built from an asset file so the next draw reloads them.
	// Must be called between frames.
	//
	// Parameters:
	//   - file: the asset file name relative to the asset directory
	//
	// Returns:
	//   - int: the number of cache entries dropped
	Invalidate(file string) int

	// Stats returns cache sizes and the draw counts of the last frame.
	Stats() Stats

	// Close releases every cached resource and the backend.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on top of a backend and configures the surface.
//
// Parameters:
//   - backend: the GPU backend (must not be nil)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backend Backend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a backend")
	}

	r := &renderer{
		mu:         &sync.Mutex{},
		backend:    backend,
		width:      800,
		height:     600,
		clearColor: common.Color{0.1, 0.1, 0.1, 1},
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = logging.Component(r.logger, "renderer")

	r.meshes = cache.NewCache(meshRegistry(backend).Factory(), Mesh.Release,
		cache.WithName("meshes"), cache.WithLogger(r.logger))
	r.shaders = cache.NewCache(shaderRegistry(backend, r.assets, r.logger).Factory(), pipeline.Pipeline.Release,
		cache.WithName("shaders"), cache.WithLogger(r.logger))
	r.textures = cache.NewCache(textureRegistry(backend, r.assets, r.logger).Factory(), Texture.Release,
		cache.WithName("textures"), cache.WithLogger(r.logger))

	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}
	backend.SetClearColor(r.clearColor)
	backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) Debug() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debug
}

func (r *renderer) SetDebug(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = enabled
}

func (r *renderer) BeginFrame(cam camera.GPUCameraUniform, lights []GPULight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.beginFrame(cam, lights)
}

func (r *renderer) Draw(cmd DrawCommand) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draw(cmd)
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endFrame()
}

func (r *renderer) Render(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lights := frame.Lights
	if lights == nil {
		lights = LightsOf(frame.Objects)
	}
	if err := r.beginFrame(frame.Camera, lights); err != nil {
		return err
	}

	eye := frame.Camera.CameraPosition
	r.draw(DrawCommand{
		Mesh:    PrimitiveSkybox,
		Program: ShaderSkybox,
		Texture: TextureSkybox,
		Model:   common.ModelMatrix(eye, skyboxScale),
		Color:   common.Color{1, 1, 1, 1},
	})

	for _, obj := range frame.Objects {
		r.drawObject(obj)
	}

	if r.debug {
		r.draw(DrawCommand{
			Mesh:    PrimitiveCoordinateSystem,
			Program: ShaderDebugNormals,
			Texture: TextureWhite,
			Model:   mgl32.Ident4(),
			Color:   common.Color{1, 1, 1, 1},
		})
	}

	if frame.Gizmo != nil {
		r.drawGizmo(*frame.Gizmo, frame.Dragging, frame.DragAxis)
	}

	r.endFrame()
	return nil
}

// LightsOf converts the light objects among objects into light slots, in order.
func LightsOf(objects []scene.Object) []GPULight {
	var lights []GPULight
	for _, obj := range objects {
		if obj.Kind == scene.KindLight {
			lights = append(lights, GPULight{Position: obj.Position.Vec4(1), Color: obj.Color.Vec4(1)})
		}
	}
	return lights
}

func (r *renderer) Sweep() int {
	return r.meshes.Sweep() + r.shaders.Sweep() + r.textures.Sweep()
}

func (r *renderer) Invalidate(file string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inFrame {
		r.logger.Warn("asset invalidation requested mid-frame, ignoring", "file", file)
		return 0
	}

	dropped := 0
	for _, id := range shadersForFile(file) {
		if r.shaders.Invalidate(id) {
			dropped++
		}
	}
	for _, id := range texturesForFile(file) {
		if r.textures.Invalidate(id) {
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Info("reloading asset", "file", file, "entries", dropped)
	}
	return dropped
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Meshes:   r.meshes.Len(),
		Shaders:  r.shaders.Len(),
		Textures: r.textures.Len(),
		Drawn:    r.drawn,
		Skipped:  r.skipped,
	}
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meshes.Purge()
	r.shaders.Purge()
	r.textures.Purge()
	r.backend.Release()
}

func (r *renderer) beginFrame(cam camera.GPUCameraUniform, lights []GPULight) error {
	if r.inFrame {
		return errors.New("renderer: frame already in progress")
	}
	if err := r.backend.BeginFrame(NewGPUFrameUniform(cam, lights)); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	r.inFrame = true
	r.drawn, r.skipped = 0, 0
	return nil
}

func (r *renderer) endFrame() {
	if !r.inFrame {
		return
	}
	r.backend.EndFrame()
	r.backend.Present()
	r.inFrame = false
}

// draw fetches the command's resources and records it. Cache failures are already logged by the
// caches, so a skipped draw is only counted.
func (r *renderer) draw(cmd DrawCommand) bool {
	if !r.inFrame {
		r.logger.Warn("draw outside a frame", "mesh", cmd.Mesh, "error", ErrNoFrame)
		return false
	}

	mesh, err := r.meshes.Get(cmd.Mesh)
	if err != nil {
		r.skipped++
		return false
	}
	program, err := r.shaders.Get(cmd.Program)
	if err != nil {
		r.skipped++
		return false
	}
	texture, err := r.textures.Get(cmd.Texture)
	if err != nil {
		r.skipped++
		return false
	}

	if err := r.backend.Draw(program, mesh, texture, GPUDrawUniform{Model: cmd.Model, Color: mgl32.Vec4(cmd.Color)}); err != nil {
		r.logger.Warn("draw failed", "mesh", cmd.Mesh, "shader", cmd.Program, "error", err)
		r.skipped++
		return false
	}
	r.drawn++
	return true
}

func (r *renderer) drawObject(obj scene.Object) {
	switch obj.Kind {
	case scene.KindSphere:
		color := obj.Color
		if obj.Selected {
			color = color.Add(selectionTint).Mul(0.5)
		}
		model := common.ModelMatrix(obj.Position, obj.Radius)
		r.draw(DrawCommand{
			Mesh:    PrimitiveSphere,
			Program: ShaderShaded,
			Texture: TextureChecker,
			Model:   model,
			Color:   common.Color{color.X(), color.Y(), color.Z(), 1},
		})
		if r.debug {
			r.draw(DrawCommand{
				Mesh:    PrimitiveSphereNormals,
				Program: ShaderDebugNormals,
				Texture: TextureWhite,
				Model:   model,
				Color:   common.Color{1, 1, 1, 1},
			})
		}
	case scene.KindLight:
		color := obj.Color
		if obj.Selected {
			color = selectionTint
		}
		r.draw(DrawCommand{
			Mesh:    PrimitiveSphere,
			Program: ShaderFlat,
			Texture: TextureWhite,
			Model:   common.ModelMatrix(obj.Position, scene.LightRadius),
			Color:   common.Color{color.X(), color.Y(), color.Z(), 1},
		})
	default:
		r.logger.Warn("no draw routine for object kind", "kind", obj.Kind, "object", obj.Name)
	}
}

func (r *renderer) drawGizmo(g picking.Gizmo, dragging bool, active picking.Axis) {
	length := g.ShaftLength()
	for _, axis := range picking.Axes {
		color := axisColors[axis]
		if dragging && axis == active {
			color = activeAxisColor
		}
		dir := axis.Vector()
		r.draw(DrawCommand{
			Mesh:    PrimitiveCylinder,
			Program: ShaderOverlay,
			Texture: TextureWhite,
			Model:   common.AxisModelMatrix(g.Center, int(axis), mgl32.Vec3{g.ShaftRadius(), length, g.ShaftRadius()}),
			Color:   color,
		})
		r.draw(DrawCommand{
			Mesh:    PrimitiveCone,
			Program: ShaderOverlay,
			Texture: TextureWhite,
			Model:   common.AxisModelMatrix(g.Center.Add(dir.Mul(length)), int(axis), mgl32.Vec3{g.HeadRadius(), g.HeadHeight(), g.HeadRadius()}),
			Color:   color,
		})
	}
}
