package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayInfiniteCylinder(t *testing.T) {
	axisPoint := mgl32.Vec3{0, 0, 0}
	axisDir := mgl32.Vec3{0, 1, 0}

	t.Run("two roots in front", func(t *testing.T) {
		r := RayInfiniteCylinder(Ray{Origin: mgl32.Vec3{-5, 0.5, 0}, Direction: mgl32.Vec3{1, 0, 0}}, axisPoint, axisDir, 0.5)

		assert.True(t, r.Valid0)
		assert.True(t, r.Valid1)
		assert.InDelta(t, 4.5, r.T0, tolerance)
		assert.InDelta(t, 5.5, r.T1, tolerance)
	})

	t.Run("origin inside keeps only the forward root", func(t *testing.T) {
		r := RayInfiniteCylinder(Ray{Origin: mgl32.Vec3{0, 0.5, 0}, Direction: mgl32.Vec3{1, 0, 0}}, axisPoint, axisDir, 0.5)

		assert.False(t, r.Valid0)
		assert.True(t, r.Valid1)
		got, ok := r.Nearest()
		require.True(t, ok)
		assert.InDelta(t, 0.5, got, tolerance)
	})

	t.Run("tangent ray reports one root twice", func(t *testing.T) {
		r := RayInfiniteCylinder(Ray{Origin: mgl32.Vec3{-5, 0, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}, axisPoint, axisDir, 0.5)

		assert.True(t, r.Valid0)
		assert.True(t, r.Valid1)
		assert.Equal(t, r.T0, r.T1)
		assert.InDelta(t, 5, r.T0, tolerance)
	})

	t.Run("ray parallel to axis has no lateral roots", func(t *testing.T) {
		r := RayInfiniteCylinder(Ray{Origin: mgl32.Vec3{0.2, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}, axisPoint, axisDir, 0.5)

		_, ok := r.Nearest()
		assert.False(t, ok)
	})

	t.Run("miss", func(t *testing.T) {
		r := RayInfiniteCylinder(Ray{Origin: mgl32.Vec3{-5, 0, 2}, Direction: mgl32.Vec3{1, 0, 0}}, axisPoint, axisDir, 0.5)

		assert.Equal(t, CylinderRoots{}, r)
	})
}

func TestRayCylinder(t *testing.T) {
	base := mgl32.Vec3{0, 0, 0}
	top := mgl32.Vec3{0, 1, 0}
	const radius = 0.5

	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float32
	}{
		{
			name:   "lateral hit between caps",
			ray:    Ray{Origin: mgl32.Vec3{-5, 0.5, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			wantOK: true,
			wantT:  4.5,
		},
		{
			name:   "hit through top cap",
			ray:    Ray{Origin: mgl32.Vec3{0, 3, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			wantOK: true,
			wantT:  2,
		},
		{
			name:   "hit through bottom cap",
			ray:    Ray{Origin: mgl32.Vec3{0.1, -2, 0.1}, Direction: mgl32.Vec3{0, 1, 0}},
			wantOK: true,
			wantT:  2,
		},
		{
			name:   "lateral surface beyond top is rejected",
			ray:    Ray{Origin: mgl32.Vec3{-5, 2, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			wantOK: false,
		},
		{
			name:   "axis-parallel ray outside the discs misses",
			ray:    Ray{Origin: mgl32.Vec3{0.8, 3, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			wantOK: false,
		},
		{
			name:   "oblique ray over the top misses both caps",
			ray:    NewRay(mgl32.Vec3{3, 1.5, 0}, mgl32.Vec3{-1, -0.1, 0}),
			wantOK: false,
		},
		{
			name:   "cylinder behind origin",
			ray:    Ray{Origin: mgl32.Vec3{5, 0.5, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayCylinder(tt.ray, base, top, radius)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantT, got, tolerance)
			}
		})
	}
}

func TestCylinderShapeAlongX(t *testing.T) {
	c := Cylinder{Base: mgl32.Vec3{0, 0, 0}, Top: mgl32.Vec3{2, 0, 0}, Radius: 0.1}

	got, ok := c.Intersect(Ray{Origin: mgl32.Vec3{1, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.InDelta(t, 4.9, got, 1e-4)

	_, ok = c.Intersect(Ray{Origin: mgl32.Vec3{3, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)
}
