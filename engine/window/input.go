package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Input is the per-poll input state shared by everything that reacts to the user. The window feeds it
// from its event callbacks; the frame loop reads it and calls EndFrame once the frame is done.
//
// Pressed and released sets, the cursor delta and the scroll offset cover the events since the last
// EndFrame. Down sets persist until the matching release.
type Input struct {
	mu sync.Mutex

	keysDown     map[uint32]bool
	keysPressed  map[uint32]bool
	keysReleased map[uint32]bool

	buttonsDown     map[common.MouseButton]bool
	buttonsPressed  map[common.MouseButton]bool
	buttonsReleased map[common.MouseButton]bool

	x, y       float32
	dx, dy     float32
	haveCursor bool

	scroll float32
}

// NewInput returns an empty Input.
func NewInput() *Input {
	return &Input{
		keysDown:        make(map[uint32]bool),
		keysPressed:     make(map[uint32]bool),
		keysReleased:    make(map[uint32]bool),
		buttonsDown:     make(map[common.MouseButton]bool),
		buttonsPressed:  make(map[common.MouseButton]bool),
		buttonsReleased: make(map[common.MouseButton]bool),
	}
}

// KeyEvent records a key transition. Repeats of a held key are not new presses.
func (in *Input) KeyEvent(key uint32, down bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if down {
		if !in.keysDown[key] {
			in.keysPressed[key] = true
		}
		in.keysDown[key] = true
		return
	}
	if in.keysDown[key] {
		in.keysReleased[key] = true
	}
	delete(in.keysDown, key)
}

// ButtonEvent records a mouse button transition.
func (in *Input) ButtonEvent(button common.MouseButton, down bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if down {
		if !in.buttonsDown[button] {
			in.buttonsPressed[button] = true
		}
		in.buttonsDown[button] = true
		return
	}
	if in.buttonsDown[button] {
		in.buttonsReleased[button] = true
	}
	delete(in.buttonsDown, button)
}

// CursorEvent records a new cursor position in window pixels. The first position ever seen produces no
// delta.
func (in *Input) CursorEvent(x, y float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.haveCursor {
		in.dx += x - in.x
		in.dy += y - in.y
	}
	in.x, in.y = x, y
	in.haveCursor = true
}

// ScrollEvent accumulates a vertical scroll offset.
func (in *Input) ScrollEvent(dy float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.scroll += dy
}

// KeyPressed reports whether key went down since the last EndFrame.
func (in *Input) KeyPressed(key uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keysPressed[key]
}

// KeyDown reports whether key is held.
func (in *Input) KeyDown(key uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keysDown[key]
}

// Pressed reports whether button went down since the last EndFrame.
func (in *Input) Pressed(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttonsPressed[button]
}

// Released reports whether button went up since the last EndFrame.
func (in *Input) Released(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttonsReleased[button]
}

// Down reports whether button is held.
func (in *Input) Down(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttonsDown[button]
}

// Cursor returns the last cursor position in window pixels.
func (in *Input) Cursor() (x, y float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.x, in.y
}

// CursorDelta returns the cursor movement since the last EndFrame.
func (in *Input) CursorDelta() (dx, dy float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dx, in.dy
}

// Scroll returns the scroll offset accumulated since the last EndFrame.
func (in *Input) Scroll() float32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.scroll
}

// EndFrame clears the per-poll state.
func (in *Input) EndFrame() {
	in.mu.Lock()
	defer in.mu.Unlock()
	clear(in.keysPressed)
	clear(in.keysReleased)
	clear(in.buttonsPressed)
	clear(in.buttonsReleased)
	in.dx, in.dy = 0, 0
	in.scroll = 0
}
