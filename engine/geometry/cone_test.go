package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayCone(t *testing.T) {
	// 45 degree cone, tip at y=1 opening downward to a unit disc at y=0.
	apex := mgl32.Vec3{0, 1, 0}
	axis := mgl32.Vec3{0, -1, 0}

	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float32
	}{
		{
			name:   "side hit at half height",
			ray:    Ray{Origin: mgl32.Vec3{0, 0.5, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			wantOK: true,
			wantT:  4.5,
		},
		{
			name:   "mirror nappe above the apex is rejected",
			ray:    Ray{Origin: mgl32.Vec3{0, 1.5, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			wantOK: false,
		},
		{
			name:   "surface beyond the base is rejected",
			ray:    Ray{Origin: mgl32.Vec3{0, -0.5, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			wantOK: false,
		},
		{
			name:   "cone behind origin",
			ray:    Ray{Origin: mgl32.Vec3{0, 0.5, 5}, Direction: mgl32.Vec3{0, 0, 1}},
			wantOK: false,
		},
		{
			name:   "ray passing beside",
			ray:    Ray{Origin: mgl32.Vec3{3, 0.5, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayCone(tt.ray, apex, axis, 1, 1)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantT, got, 1e-4)
			}
		})
	}
}

func TestConeShapeArrowhead(t *testing.T) {
	// Arrowhead of a +Z gizmo axis: tip at z=3, base disc of radius 0.5 at z=2.
	c := Cone{Apex: mgl32.Vec3{0, 0, 3}, Axis: mgl32.Vec3{0, 0, -1}, Height: 1, Radius: 0.5}

	got, ok := c.Intersect(Ray{Origin: mgl32.Vec3{5, 0, 2.5}, Direction: mgl32.Vec3{-1, 0, 0}})
	require.True(t, ok)
	assert.InDelta(t, 4.75, got, 1e-4)

	_, ok = c.Intersect(Ray{Origin: mgl32.Vec3{5, 0, 3.5}, Direction: mgl32.Vec3{-1, 0, 0}})
	assert.False(t, ok)
}
