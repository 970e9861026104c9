package picking

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orthoViewport looks down -Z from z=10. Window coordinates map straight to world x and y.
type orthoViewport struct{}

func (orthoViewport) Ray(x, y float32) geometry.Ray {
	return geometry.Ray{Origin: mgl32.Vec3{x, y, 10}, Direction: mgl32.Vec3{0, 0, -1}}
}

func (orthoViewport) Position() mgl32.Vec3 { return mgl32.Vec3{0, 0, 10} }

func (orthoViewport) Forward() mgl32.Vec3 { return mgl32.Vec3{0, 0, -1} }

func newFixture(t *testing.T, objects ...scene.Object) (scene.Scene, Controller) {
	t.Helper()
	sc := scene.NewScene("test", scene.WithLogger(logging.Discard()), scene.WithObjects(objects...))
	t.Cleanup(sc.Close)
	return sc, NewController(sc, orthoViewport{}, WithLogger(logging.Discard()))
}

func selectedCount(sc scene.Scene) int {
	n := 0
	for _, obj := range sc.Objects() {
		if obj.Selected {
			n++
		}
	}
	return n
}

func TestPressSelectsNearestObject(t *testing.T) {
	sc, c := newFixture(t,
		scene.NewSphere("far", mgl32.Vec3{0, 0, -10}, 1, mgl32.Vec3{}),
		scene.NewSphere("near", mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec3{}),
	)

	c.Press(0, 0)

	selected, ok := sc.Selected()
	require.True(t, ok)
	assert.Equal(t, "near", selected.Name)
	assert.Equal(t, StateIdle, c.State())
}

func TestPressOnNothingClearsSelection(t *testing.T) {
	sc, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))

	c.Press(0, 0)
	require.Equal(t, 1, selectedCount(sc))

	c.Press(5, 5)
	assert.Equal(t, 0, selectedCount(sc))
	assert.Equal(t, StateIdle, c.State())
}

func TestSelectionStaysExclusive(t *testing.T) {
	objects, err := scene.Preset(scene.PresetGrid)
	require.NoError(t, err)
	sc, c := newFixture(t, objects...)

	for _, obj := range sc.Objects() {
		// Press off to the side first so the gizmo of the previous pick is not in the way.
		c.Press(100, 100)
		assert.Equal(t, 0, selectedCount(sc))

		c.Press(obj.Position.X(), obj.Position.Y())
		assert.LessOrEqual(t, selectedCount(sc), 1)
		c.Release()
	}
}

func TestPressOnGizmoStartsDrag(t *testing.T) {
	sc, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	c.Press(0, 0)
	_, ok := sc.Selected()
	require.True(t, ok)

	// Gizmo depth is 10, so the Y shaft runs to y=1.5 outside the sphere.
	c.Press(0, 1.2)

	assert.Equal(t, StateDragging, c.State())
	axis, ok := c.Axis()
	require.True(t, ok)
	assert.Equal(t, AxisY, axis)

	selected, ok := sc.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.Name)
}

func TestDragMovesOnlyLockedAxis(t *testing.T) {
	start := mgl32.Vec3{0.1, 0.2, 0.3}
	sc, c := newFixture(t, scene.NewSphere("a", start, 0.5, mgl32.Vec3{}))
	c.Press(0.1, 0.2)
	c.Press(0.1, 1.4)
	require.Equal(t, StateDragging, c.State())

	moves := [][4]float32{{0.4, 1.9, 0.3, 0.5}, {0.2, 1.6, -0.2, -0.3}, {0.9, 1.6, 0.7, 0}}
	for _, m := range moves {
		c.Move(m[0], m[1], m[2], m[3])
	}

	obj, ok := sc.Get(sc.Objects()[0].ID)
	require.True(t, ok)
	assert.Equal(t, math.Float32bits(start.X()), math.Float32bits(obj.Position.X()))
	assert.Equal(t, math.Float32bits(start.Z()), math.Float32bits(obj.Position.Z()))
	assert.InDelta(t, 0.4, obj.Position.Y(), 1e-5)
}

func TestDragSensitivity(t *testing.T) {
	sc := scene.NewScene("test", scene.WithLogger(logging.Discard()))
	t.Cleanup(sc.Close)
	id := sc.Add(scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	c := NewController(sc, orthoViewport{}, WithLogger(logging.Discard()), WithSensitivity(2))

	c.Press(0, 0)
	c.Press(1.2, 0)
	axis, ok := c.Axis()
	require.True(t, ok)
	require.Equal(t, AxisX, axis)

	c.Move(1.45, 0, 0.25, 0)

	obj, _ := sc.Get(id)
	assert.InDelta(t, 0.5, obj.Position.X(), 1e-5)
}

func TestZeroDeltaMoveIsIgnored(t *testing.T) {
	sc, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	c.Press(0, 0)
	c.Press(0, 1.2)
	require.Equal(t, StateDragging, c.State())

	// The pointer position alone never moves the object.
	c.Move(0, 3, 0, 0)

	obj := sc.Objects()[0]
	assert.Equal(t, mgl32.Vec3{}, obj.Position)
}

func TestReleaseAlwaysReturnsToIdle(t *testing.T) {
	for _, pressAt := range []mgl32.Vec2{{1.2, 0}, {0, 1.2}} {
		sc, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
		c.Press(0, 0)
		c.Press(pressAt.X(), pressAt.Y())
		require.Equal(t, StateDragging, c.State())
		c.Move(2, 2, 0.5, 0.5)
		before := sc.Objects()[0].Position

		c.Release()

		assert.Equal(t, StateIdle, c.State())
		_, ok := c.Axis()
		assert.False(t, ok)
		assert.Equal(t, before, sc.Objects()[0].Position)

		c.Move(3, 3, 1, 1)
		assert.Equal(t, before, sc.Objects()[0].Position)
	}
}

func TestReleaseWhileIdle(t *testing.T) {
	_, c := newFixture(t)
	c.Release()
	assert.Equal(t, StateIdle, c.State())
}

func TestPressWhileDraggingIsIgnored(t *testing.T) {
	sc, c := newFixture(t,
		scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}),
		scene.NewSphere("b", mgl32.Vec3{5, 0, 0}, 1, mgl32.Vec3{}),
	)
	c.Press(0, 0)
	c.Press(0, 1.2)
	require.Equal(t, StateDragging, c.State())

	c.Press(5, 0)

	selected, ok := sc.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.Name)
	assert.Equal(t, StateDragging, c.State())
}

func TestMoveEndsDragWhenObjectRemoved(t *testing.T) {
	sc, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	c.Press(0, 0)
	c.Press(0, 1.2)
	require.Equal(t, StateDragging, c.State())

	sc.Reset()
	c.Move(0, 2, 0, 0.8)

	assert.Equal(t, StateIdle, c.State())
}

func TestSelectionCallback(t *testing.T) {
	sc := scene.NewScene("test", scene.WithLogger(logging.Discard()))
	t.Cleanup(sc.Close)
	id := sc.Add(scene.NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))

	var got []bool
	var ids []scene.ObjectID
	c := NewController(sc, orthoViewport{}, WithLogger(logging.Discard()), WithSelectionCallback(func(picked scene.ObjectID, ok bool) {
		ids = append(ids, picked)
		got = append(got, ok)
	}))

	c.Press(0, 0)
	c.Press(9, 9)

	assert.Equal(t, []bool{true, false}, got)
	assert.Equal(t, id, ids[0])
}

func TestControllerGizmoFollowsSelection(t *testing.T) {
	_, c := newFixture(t, scene.NewSphere("a", mgl32.Vec3{0, 0, -10}, 1, mgl32.Vec3{}))

	_, ok := c.Gizmo()
	assert.False(t, ok)

	c.Press(0, 0)
	g, ok := c.Gizmo()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -10}, g.Center)
	assert.InDelta(t, 20, g.Scale, 1e-5)
}

func TestNewControllerPanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewController(nil, orthoViewport{}) })

	sc := scene.NewScene("test", scene.WithLogger(logging.Discard()))
	t.Cleanup(sc.Close)
	assert.Panics(t, func() { NewController(sc, nil) })
}
