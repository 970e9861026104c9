package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s := NewScene("test", append([]SceneBuilderOption{WithLogger(logging.Discard())}, options...)...)
	t.Cleanup(s.Close)
	return s
}

func TestCastRayPrefersNearestObject(t *testing.T) {
	s := newTestScene(t)
	b := s.Add(NewSphere("b", mgl32.Vec3{0, 0, 10}, 1, mgl32.Vec3{}))
	a := s.Add(NewSphere("a", mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec3{}))

	hit, ok := s.CastRay(geometry.Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}})

	require.True(t, ok)
	assert.Equal(t, a, hit.ID)
	assert.NotEqual(t, b, hit.ID)
	assert.InDelta(t, 4, hit.T, 1e-5)
}

func TestCastRayMiss(t *testing.T) {
	s := newTestScene(t, WithObjects(NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{})))

	_, ok := s.CastRay(geometry.Ray{Origin: mgl32.Vec3{0, 5, -5}, Direction: mgl32.Vec3{0, 0, 1}})
	assert.False(t, ok)
}

func TestLightsAreHitAsSmallSpheres(t *testing.T) {
	s := newTestScene(t)
	id := s.Add(NewLight("l", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))

	hit, ok := s.CastRay(geometry.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.Equal(t, id, hit.ID)
	assert.InDelta(t, 5-LightRadius, hit.T, 1e-5)

	_, ok = s.CastRay(geometry.Ray{Origin: mgl32.Vec3{0.2, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)
}

func TestCastRayParallelMatchesSequential(t *testing.T) {
	var objects []Object
	for i := range 64 {
		// Two identical spheres per depth so every depth is an exact tie.
		z := float32(i%8) * 3
		objects = append(objects, NewSphere("s", mgl32.Vec3{0, 0, z}, 1, mgl32.Vec3{}))
	}

	seq := newTestScene(t, WithObjects(objects...), WithParallelThreshold(1000))
	par := newTestScene(t, WithObjects(objects...), WithParallelThreshold(1), WithComputeWorkers(4))

	ray := geometry.Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}}
	want, ok := seq.CastRay(ray)
	require.True(t, ok)
	got, ok := par.CastRay(ray)
	require.True(t, ok)

	assert.Equal(t, want, got)
	assert.Equal(t, uint32(0), got.ID.Index)
}

func TestSelectIsExclusive(t *testing.T) {
	s := newTestScene(t, WithObjects(defaultPreset()...))
	objects := s.Objects()
	require.Len(t, objects, 5)

	for _, obj := range objects {
		require.True(t, s.Select(obj.ID))

		count := 0
		for _, o := range s.Objects() {
			if o.Selected {
				count++
			}
		}
		assert.Equal(t, 1, count)

		selected, ok := s.Selected()
		require.True(t, ok)
		assert.Equal(t, obj.ID, selected.ID)
	}

	s.ClearSelection()
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSelectStaleHandleLeavesSelectionCleared(t *testing.T) {
	s := newTestScene(t)
	a := s.Add(NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	b := s.Add(NewSphere("b", mgl32.Vec3{3, 0, 0}, 1, mgl32.Vec3{}))
	require.True(t, s.Select(a))
	require.True(t, s.Remove(b))

	assert.False(t, s.Select(b))
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestHandlesGoStaleAcrossRemoveAndReset(t *testing.T) {
	s := newTestScene(t)
	a := s.Add(NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	require.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))

	reused := s.Add(NewSphere("b", mgl32.Vec3{}, 1, mgl32.Vec3{}))
	assert.Equal(t, a.Index, reused.Index)
	assert.NotEqual(t, a, reused)
	_, ok := s.Get(a)
	assert.False(t, ok)

	objects, err := Preset(PresetGrid)
	require.NoError(t, err)
	s.Reset(objects...)

	_, ok = s.Get(reused)
	assert.False(t, ok)
	assert.Equal(t, len(objects), s.Len())
	assert.Equal(t, "sphere-0-0", s.Objects()[0].Name)
}

func TestSetPosition(t *testing.T) {
	s := newTestScene(t)
	id := s.Add(NewSphere("a", mgl32.Vec3{}, 1, mgl32.Vec3{}))

	require.True(t, s.SetPosition(id, mgl32.Vec3{1, 2, 3}))
	obj, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, obj.Position)

	assert.False(t, s.SetPosition(ObjectID{Index: 9, Generation: 1}, mgl32.Vec3{}))
}

func TestVisibleCullsObjectsBehindCamera(t *testing.T) {
	s := newTestScene(t)
	front := s.Add(NewSphere("front", mgl32.Vec3{0, 0, -5}, 1, mgl32.Vec3{}))
	s.Add(NewSphere("behind", mgl32.Vec3{0, 0, 5}, 1, mgl32.Vec3{}))

	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	visible := s.Visible(common.ExtractFrustum(proj.Mul4(view)))
	require.Len(t, visible, 1)
	assert.Equal(t, front, visible[0].ID)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{PresetDefault, PresetGrid}, Presets())

	objects, err := Preset(PresetDefault)
	require.NoError(t, err)
	require.Len(t, objects, 5)
	assert.Equal(t, KindSphere, objects[0].Kind)
	assert.Equal(t, float32(1), objects[0].Radius)
	for _, l := range objects[1:] {
		assert.Equal(t, KindLight, l.Kind)
		assert.Equal(t, float32(1), l.Position.Y())
	}

	_, err = Preset("nope")
	assert.Error(t, err)
}
