package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/picking"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Context holds every subsystem a frame touches. It is passed explicitly instead of living in
// package globals.
type Context struct {
	// Window drives Run. It may be nil when frames are stepped by hand.
	Window     window.Window
	Input      *window.Input
	Camera     camera.Camera
	Scene      scene.Scene
	Controller picking.Controller
	Renderer   renderer.Renderer
	// Watcher is nil when hot reload is off.
	Watcher loader.Watcher
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	ctx    Context
	logger *slog.Logger

	running  bool
	quitOnce sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool
	profileInterval  time.Duration

	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the viewer.
// It turns each window poll into one frame: input, pending reloads, render, resource sweep.
type Engine interface {
	// Context returns the subsystems the engine drives.
	Context() *Context

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers a function called at the end of each frame.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// LoadPreset replaces the scene contents with a named preset. Any drag in progress ends and the
	// selection is cleared.
	//
	// Parameters:
	//   - name: the preset name, see scene.Presets
	//
	// Returns:
	//   - error: if the preset does not exist; the scene is left untouched
	LoadPreset(name string) error

	// Step runs one frame. Run calls it once per window poll; tests call it directly after feeding
	// the Input. Caches are swept only after a frame that rendered.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - error: an error if the frame could not be rendered
	Step(deltaTime float32) error

	// Running reports whether the engine has not been asked to quit.
	Running() bool

	// Run drives Step from the window's message loop and blocks until the window closes.
	// Must be called on the thread that created the window.
	Run()

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine over a Context. Panics if any subsystem other than Window and Watcher
// is missing.
//
// Parameters:
//   - ctx: the subsystems to drive
//   - options: functional options for engine configuration (profiling, frame limit, logger)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(ctx Context, options ...EngineBuilderOption) Engine {
	switch {
	case ctx.Input == nil:
		panic("engine: NewEngine requires an Input")
	case ctx.Camera == nil:
		panic("engine: NewEngine requires a Camera")
	case ctx.Scene == nil:
		panic("engine: NewEngine requires a Scene")
	case ctx.Controller == nil:
		panic("engine: NewEngine requires a picking Controller")
	case ctx.Renderer == nil:
		panic("engine: NewEngine requires a Renderer")
	}

	e := &engine{
		mu:      &sync.Mutex{},
		ctx:     ctx,
		running: true,
	}
	for _, opt := range options {
		opt(e)
	}
	parent := e.logger
	e.logger = logging.Component(parent, "engine")
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(
			profiler.WithLogger(parent),
			profiler.WithInterval(e.profileInterval),
			profiler.WithAttrSource(e.statsAttrs),
		)
	}

	if ctx.Window != nil {
		ctx.Window.SetResizeCallback(e.resize)
	}
	return e
}

func (e *engine) Context() *Context {
	return &e.ctx
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) LoadPreset(name string) error {
	objects, err := scene.Preset(name)
	if err != nil {
		return err
	}
	e.ctx.Controller.Release()
	e.ctx.Scene.Reset(objects...)
	e.logger.Info("loaded scene preset", "preset", name, "objects", len(objects))
	return nil
}

func (e *engine) Step(deltaTime float32) error {
	e.handleKeys()
	e.handlePointer()
	e.applyReloads()

	// A dropped frame requested nothing, so sweeping it would evict every cached resource.
	err := e.render()
	if err != nil {
		err = fmt.Errorf("render frame: %w", err)
	} else {
		e.ctx.Renderer.Sweep()
	}

	e.mu.Lock()
	callback, profiling := e.renderCallback, e.profilingEnabled
	e.mu.Unlock()
	if callback != nil {
		callback(deltaTime)
	}
	if profiling {
		e.profiler.Tick()
	}
	return err
}

func (e *engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *engine) Run() {
	if e.ctx.Window == nil {
		panic("engine: Run requires a Window")
	}

	lastFrame := time.Now()
	e.ctx.Window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if err := e.Step(dt); err != nil {
			e.logger.Warn("frame dropped", "error", err)
		}

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit > 0 {
			if remaining := limit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.ctx.Window.ProcessMessages()
	e.Quit()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		if e.ctx.Window != nil {
			e.ctx.Window.RequestClose()
		}
		e.logger.Info("quit requested")
	})
}

// handleKeys applies the viewer's key bindings.
func (e *engine) handleKeys() {
	in := e.ctx.Input

	if in.KeyPressed(common.KeyEsc) {
		e.Quit()
	}
	if in.KeyPressed(common.KeyD) {
		debug := !e.ctx.Renderer.Debug()
		e.ctx.Renderer.SetDebug(debug)
		e.logger.Info("debug drawing toggled", "enabled", debug)
	}
	if in.KeyPressed(common.KeyR) {
		e.ctx.Camera.Controller().Reset()
	}

	preset := ""
	switch {
	case in.KeyPressed(common.Key1):
		preset = scene.PresetDefault
	case in.KeyPressed(common.Key2):
		preset = scene.PresetGrid
	}
	if preset != "" {
		if err := e.LoadPreset(preset); err != nil {
			e.logger.Error("could not load preset", "preset", preset, "error", err)
		}
	}
}

// handlePointer routes the mouse: middle orbits, right pans, the wheel zooms and the left button
// drives picking.
func (e *engine) handlePointer() {
	in := e.ctx.Input
	x, y := in.Cursor()
	dx, dy := in.CursorDelta()
	moved := dx != 0 || dy != 0
	orbit := e.ctx.Camera.Controller()

	if moved && in.Down(common.MouseButtonMiddle) {
		orbit.Orbit(dx, dy)
	}
	if moved && in.Down(common.MouseButtonRight) {
		orbit.Pan(dx, dy)
	}
	if scroll := in.Scroll(); scroll != 0 {
		orbit.Zoom(scroll)
	}

	// The cursor delta of the press frame predates the press, so a drag starts moving on the next poll.
	picker := e.ctx.Controller
	pressed := in.Pressed(common.MouseButtonLeft)
	if pressed {
		picker.Press(x, y)
	}
	if moved && !pressed && in.Down(common.MouseButtonLeft) && picker.State() == picking.StateDragging {
		picker.Move(x, y, dx, dy)
	}
	if in.Released(common.MouseButtonLeft) {
		picker.Release()
	}
}

// applyReloads invalidates the cache entries of every asset changed since the previous frame.
func (e *engine) applyReloads() {
	if e.ctx.Watcher == nil {
		return
	}
	for _, name := range e.ctx.Watcher.Drain() {
		e.ctx.Renderer.Invalidate(name)
	}
}

func (e *engine) render() error {
	cam := e.ctx.Camera
	frame := renderer.Frame{
		Camera:  cam.Uniform(),
		Objects: e.ctx.Scene.Visible(cam.Frustum()),
		Lights:  renderer.LightsOf(e.ctx.Scene.Objects()),
	}
	if g, ok := e.ctx.Controller.Gizmo(); ok {
		frame.Gizmo = &g
	}
	frame.DragAxis, frame.Dragging = e.ctx.Controller.Axis()
	return e.ctx.Renderer.Render(frame)
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.ctx.Renderer.Resize(width, height)
	e.ctx.Camera.SetViewport(width, height)
}

// statsAttrs reports the renderer's cache sizes and draw counts to the profiler.
func (e *engine) statsAttrs() []slog.Attr {
	stats := e.ctx.Renderer.Stats()
	return []slog.Attr{
		slog.Group("caches",
			slog.Int("meshes", stats.Meshes),
			slog.Int("shaders", stats.Shaders),
			slog.Int("textures", stats.Textures),
		),
		slog.Int("drawn", stats.Drawn),
		slog.Int("skipped", stats.Skipped),
	}
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
