package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotOpen = errors.New("window: not open")

// glfwWindow is the GLFW side of an engineWindow. Every method must run on the thread that created it.
type glfwWindow struct {
	handle  *glfw.Window
	running bool
}

// openGLFW initialises GLFW and opens a window without a GL context, since wgpu owns the surface.
// Input callbacks only record into the parent's Input; the frame loop consumes it after each poll.
//
// https://www.glfw.org/docs/latest/window_guide.html
func openGLFW(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create glfw window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	in := w.input
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			in.KeyEvent(uint32(key), false)
			return
		}
		in.KeyEvent(uint32(key), true)
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		in.ButtonEvent(common.MouseButton(button), action == glfw.Press)
	})
	handle.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		in.ScrollEvent(float32(dy))
	})
	// GLFW reports the cursor in screen coordinates; the camera works in framebuffer pixels, which
	// differ on high-DPI displays.
	handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		sx, sy := framebufferScale(win)
		in.CursorEvent(float32(x*sx), float32(y*sy))
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})

	w.width, w.height = handle.GetFramebufferSize()
	return &glfwWindow{handle: handle, running: true}, nil
}

func framebufferScale(win *glfw.Window) (float64, float64) {
	ww, wh := win.GetSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	fw, fh := win.GetFramebufferSize()
	return float64(fw) / float64(ww), float64(fh) / float64(wh)
}

// surfaceDescriptor picks the Windows, X11, Wayland or Metal surface for the window.
func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if g == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(g.handle)
}

func (g *glfwWindow) open() bool {
	return g != nil && g.running && !g.handle.ShouldClose()
}

// poll drains pending OS events without blocking and reports whether the window is still open.
func (g *glfwWindow) poll() bool {
	glfw.PollEvents()
	return g.open()
}

func (g *glfwWindow) requestClose() {
	if g == nil {
		return
	}
	g.running = false
	g.handle.SetShouldClose(true)
}

func (g *glfwWindow) destroy() error {
	if g == nil || g.handle == nil {
		return errNotOpen
	}
	g.requestClose()
	g.handle.Destroy()
	g.handle = nil
	glfw.Terminate()
	return nil
}
