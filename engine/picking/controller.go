// Package picking turns pointer input into object selection and axis-constrained gizmo drags.
package picking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSensitivity scales the back-projected drag displacement.
const DefaultSensitivity float32 = 1.0

// DragState is the controller's state.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Viewport is what the controller needs from the camera.
type Viewport interface {
	// Ray returns the world-space picking ray through a window position, in pixels from the top-left.
	Ray(x, y float32) geometry.Ray

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Forward returns the camera's unit view direction.
	Forward() mgl32.Vec3
}

// SelectionCallback is invoked after each scene pick with the newly selected object, or with ok false
// when the pick cleared the selection.
type SelectionCallback func(id scene.ObjectID, ok bool)

// Controller is the press/move/release state machine for selecting and dragging scene objects.
// Thread-safe for concurrent access.
type Controller interface {
	// Press handles a primary button press at a window position. While idle it either starts a drag on
	// the gizmo arrow under the pointer or re-picks the selection. Ignored while dragging.
	//
	// Parameters:
	//   - x: pointer x in pixels
	//   - y: pointer y in pixels
	Press(x, y float32)

	// Move handles a pointer move while dragging. The previous position is (x-dx, y-dy). A zero delta is
	// ignored. The selected object moves along the locked axis only.
	//
	// Parameters:
	//   - x: pointer x in pixels
	//   - y: pointer y in pixels
	//   - dx: x offset since the previous poll
	//   - dy: y offset since the previous poll
	Move(x, y, dx, dy float32)

	// Release ends any drag and returns to idle.
	Release()

	// State returns the current drag state.
	State() DragState

	// Axis returns the locked axis.
	//
	// Returns:
	//   - Axis: the axis being dragged
	//   - bool: false when idle
	Axis() (Axis, bool)

	// Gizmo returns the gizmo for the current selection as seen from the viewport.
	//
	// Returns:
	//   - Gizmo: the gizmo
	//   - bool: false when nothing is selected
	Gizmo() (Gizmo, bool)
}

type controller struct {
	mu     *sync.Mutex
	logger *slog.Logger

	scene    scene.Scene
	viewport Viewport

	sensitivity float32
	dims        GizmoDimensions
	onSelect    SelectionCallback

	state   DragState
	axis    Axis
	dragged scene.ObjectID
}

var _ Controller = &controller{}

// NewController creates a picking Controller over a scene and a viewport. Panics if either is nil.
//
// Parameters:
//   - sc: the scene whose objects are picked and moved
//   - vp: the viewport used to build rays and back-project drags
//   - options: functional options to further configure the controller
//
// Returns:
//   - Controller: the newly created controller, idle
func NewController(sc scene.Scene, vp Viewport, options ...ControllerBuilderOption) Controller {
	if sc == nil {
		panic("picking: NewController requires a non-nil Scene")
	}
	if vp == nil {
		panic("picking: NewController requires a non-nil Viewport")
	}

	c := &controller{
		mu:          &sync.Mutex{},
		scene:       sc,
		viewport:    vp,
		sensitivity: DefaultSensitivity,
		dims:        DefaultGizmoDimensions,
	}

	for _, option := range options {
		option(c)
	}
	c.logger = logging.Component(c.logger, "picking")

	return c
}

func (c *controller) Press(x, y float32) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}

	ray := c.viewport.Ray(x, y)
	if obj, ok := c.scene.Selected(); ok {
		g := NewGizmo(obj.Position, c.dims, c.viewport.Position(), c.viewport.Forward())
		if axis, t, hit := g.Hit(ray); hit {
			c.state = StateDragging
			c.axis = axis
			c.dragged = obj.ID
			c.mu.Unlock()
			c.logger.Debug("drag started", "axis", axis, "t", t, "object", obj.Name)
			return
		}
	}

	c.scene.ClearSelection()
	hit, ok := c.scene.CastRay(ray)
	if ok {
		c.scene.Select(hit.ID)
	}
	cb := c.onSelect
	c.mu.Unlock()

	if ok {
		c.logger.Debug("object picked", "index", hit.ID.Index, "t", hit.T)
	} else {
		c.logger.Debug("pick missed, selection cleared")
	}
	if cb != nil {
		cb(hit.ID, ok)
	}
}

func (c *controller) Move(x, y, dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return
	}
	if dx == 0 && dy == 0 {
		return
	}

	obj, ok := c.scene.Get(c.dragged)
	if !ok {
		c.logger.Warn("dragged object is gone, ending drag")
		c.state = StateIdle
		return
	}

	// Both points land on the plane through the object facing the camera, so the drag rate does not
	// depend on the object's depth.
	forward := c.viewport.Forward()
	cur, ok := c.backProject(x, y, obj.Position, forward)
	if !ok {
		return
	}
	prev, ok := c.backProject(x-dx, y-dy, obj.Position, forward)
	if !ok {
		return
	}

	delta := cur.Sub(prev).Dot(c.axis.Vector()) * c.sensitivity
	pos := obj.Position
	pos[c.axis] += delta
	c.scene.SetPosition(obj.ID, pos)

	c.logger.Log(context.Background(), logging.LevelTrace, "dragged", "axis", c.axis, "delta", delta)
}

func (c *controller) backProject(x, y float32, point, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	ray := c.viewport.Ray(x, y)
	t, ok := geometry.RayPlane(ray, point, normal)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return ray.At(t), true
}

func (c *controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDragging {
		c.logger.Debug("drag ended", "axis", c.axis)
	}
	c.state = StateIdle
	c.dragged = scene.ObjectID{}
}

func (c *controller) State() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controller) Axis() (Axis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.axis, c.state == StateDragging
}

func (c *controller) Gizmo() (Gizmo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.scene.Selected()
	if !ok {
		return Gizmo{}, false
	}
	return NewGizmo(obj.Position, c.dims, c.viewport.Position(), c.viewport.Forward()), true
}
