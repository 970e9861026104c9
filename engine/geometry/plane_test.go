package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayPlane(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		point  mgl32.Vec3
		normal mgl32.Vec3
		wantOK bool
		wantT  float32
	}{
		{
			name:   "facing plane",
			ray:    Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			normal: mgl32.Vec3{0, 1, 0},
			wantOK: true,
			wantT:  5,
		},
		{
			name:   "normal orientation does not matter",
			ray:    Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			normal: mgl32.Vec3{0, -1, 0},
			wantOK: true,
			wantT:  5,
		},
		{
			name:   "parallel ray misses",
			ray:    Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			normal: mgl32.Vec3{0, 1, 0},
			wantOK: false,
		},
		{
			name:   "plane behind origin misses",
			ray:    Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, 1, 0}},
			normal: mgl32.Vec3{0, 1, 0},
			wantOK: false,
		},
		{
			name:   "origin on plane hits at zero",
			ray:    Ray{Origin: mgl32.Vec3{1, 2, 3}, Direction: mgl32.Vec3{0, 0, 1}},
			point:  mgl32.Vec3{0, 0, 3},
			normal: mgl32.Vec3{0, 0, 1},
			wantOK: true,
			wantT:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayPlane(tt.ray, tt.point, tt.normal)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantT, got, tolerance)
			}
		})
	}
}

func TestPlaneShape(t *testing.T) {
	p := Plane{Point: mgl32.Vec3{0, 0, -2}, Normal: mgl32.Vec3{0, 0, 1}}

	got, ok := p.Intersect(Ray{Direction: mgl32.Vec3{0, 0, -1}})

	require.True(t, ok)
	assert.InDelta(t, 2, got, tolerance)
}
