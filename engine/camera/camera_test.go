package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestDefaultOrbitPosition(t *testing.T) {
	c := NewCamera()

	r := float32(math.Pow(1.2, 2))
	s := r * float32(math.Sqrt2) / 2
	assertVecInDelta(t, mgl32.Vec3{0, s, s}, c.Position(), 1e-5)
	assertVecInDelta(t, mgl32.Vec3{0, -1, -1}.Normalize(), c.Forward(), 1e-5)
	assert.InDelta(t, r, c.Controller().Radius(), 1e-5)
}

func TestRayThroughViewportCentre(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))

	ray := c.Ray(400, 300)

	assertVecInDelta(t, c.Forward(), ray.Direction, 1e-3)
	assertVecInDelta(t, c.Position().Add(c.Forward().Mul(c.Near())), ray.Origin, 1e-3)

	_, ok := geometry.RaySphere(ray, mgl32.Vec3{}, 0.5)
	assert.True(t, ok)
}

func TestRayCornersPointAway(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithElevation(0))), WithViewport(800, 800))
	// Looking down -Z with a 90 degree fov, the top-left pixel ray leans left and up by 45 degrees.
	ray := c.Ray(0, 0)

	assertVecInDelta(t, mgl32.Vec3{-1, 1, -1}.Normalize(), ray.Direction, 1e-3)
}

func TestUnprojectInvertsProject(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	world := mgl32.Vec3{0.3, -0.2, 0.1}

	win := mgl32.Project(world, c.View(), c.Projection(), 0, 0, 640, 480)
	got := c.Unproject(win.X(), 480-win.Y(), win.Z())

	assertVecInDelta(t, world, got, 1e-3)
}

func TestZoomClamps(t *testing.T) {
	cc := NewCameraController()

	cc.Zoom(1)
	assert.InDelta(t, 1, cc.ZoomLevel(), 1e-6)

	cc.Zoom(100)
	assert.Equal(t, DefaultMinZoomLevel, cc.ZoomLevel())

	cc.Zoom(-100)
	assert.Equal(t, DefaultMaxZoomLevel, cc.ZoomLevel())
}

func TestOrbit(t *testing.T) {
	cc := NewCameraController()

	cc.Orbit(10, 0)
	assert.InDelta(t, -0.3, cc.Azimuth(), 1e-6)

	cc.Orbit(0, 1000)
	assert.Equal(t, DefaultMaxElevation, cc.Elevation())

	cc.Orbit(0, -1000)
	assert.Equal(t, DefaultMinElevation, cc.Elevation())
}

func TestPanFollowsYaw(t *testing.T) {
	cc := NewCameraController()
	cc.Pan(10, 0)
	assertVecInDelta(t, mgl32.Vec3{-0.1, 0, 0}, cc.Target(), 1e-6)

	cc = NewCameraController(WithAzimuth(math.Pi / 2))
	cc.Pan(10, 0)
	assertVecInDelta(t, mgl32.Vec3{0, 0, 0.1}, cc.Target(), 1e-6)
}

func TestControllerReset(t *testing.T) {
	cc := NewCameraController(WithTarget(mgl32.Vec3{1, 0, 0}))
	before := cc.Position()

	cc.Orbit(12, 4)
	cc.Pan(3, 3)
	cc.Zoom(1)
	cc.Reset()

	assert.Equal(t, before, cc.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cc.Target())
}

func TestSetViewportIgnoresEmptySize(t *testing.T) {
	c := NewCamera(WithViewport(1024, 512))
	c.SetViewport(0, 0)

	w, h := c.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestFrustumContainsTarget(t *testing.T) {
	c := NewCamera()
	f := c.Frustum()

	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 0.1))
	assert.False(t, f.ContainsSphere(c.Position().Sub(c.Forward().Mul(5)), 0.1))
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()

	buf := u.Marshal()
	require.Len(t, buf, 80)

	pos := c.Position()
	for i := range 3 {
		bits := binary.LittleEndian.Uint32(buf[64+i*4:])
		assert.Equal(t, pos[i], math.Float32frombits(bits))
	}
	assert.Equal(t, u.ViewProj[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
}

func TestUniformAppendsAfterPrefix(t *testing.T) {
	u := NewCamera().Uniform()

	buf := u.AppendTo([]byte{0xff})
	require.Len(t, buf, 81)
	assert.Equal(t, byte(0xff), buf[0])
	assert.Equal(t, u.Marshal(), buf[1:])
}
