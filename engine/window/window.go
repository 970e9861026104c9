package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the viewer's native window. It owns the Input the frame loop reads and drives the loop
// itself through ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called once per event poll. Input collected during the poll is
	// visible to the callback and cleared after it returns.
	//
	// Parameters:
	//   - callback: the per-frame function
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// Input returns the window's input state.
	Input() *Input

	// SurfaceDescriptor returns the descriptor wgpu needs to create a surface on this window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	IsRunning() bool

	// RequestClose stops the message loop after the current frame. The window stays valid until Close.
	RequestClose()

	// Close destroys the window. It returns an error when the window is already gone.
	Close() error

	// ProcessMessages polls events and calls the update callback until the window closes.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title string

	width, height       int
	minWidth, minHeight int
	maxWidth, maxHeight int

	native *glfwWindow
	logger *slog.Logger
	input  *Input

	onUpdate func()
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow opens a window. Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-viewer",
		width:     1280,
		height:    720,
		minWidth:  320,
		minHeight: 240,
		maxWidth:  3840,
		maxHeight: 2160,
		input:     NewInput(),
	}
	for _, opt := range options {
		opt(w)
	}
	w.logger = logging.Component(w.logger, "window")

	native, err := openGLFW(w)
	if err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	w.native = native
	w.logger.Info("window created", "title", w.title, "width", w.width, "height", w.height)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Input() *Input {
	return w.input
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.native.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.native.open()
}

func (w *engineWindow) RequestClose() {
	w.native.requestClose()
}

func (w *engineWindow) Close() error {
	if err := w.native.destroy(); err != nil {
		return err
	}
	w.logger.Info("window closed")
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.native.poll() {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		w.input.EndFrame()
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// resized records the new framebuffer size and forwards it. Minimising reports 0x0, which is passed
// on so listeners can skip it.
func (w *engineWindow) resized(width, height int) {
	w.width, w.height = width, height
	w.logger.Debug("framebuffer resized", "width", width, "height", height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
