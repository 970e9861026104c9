package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		center mgl32.Vec3
		radius float32
		wantOK bool
		wantT  float32
	}{
		{
			name:   "head-on hit reports near root",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			radius: 1,
			wantOK: true,
			wantT:  4,
		},
		{
			name:   "sphere behind origin misses",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}},
			radius: 1,
			wantOK: false,
		},
		{
			name:   "origin inside reports far root",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			radius: 2,
			wantOK: true,
			wantT:  2,
		},
		{
			name:   "ray passing beside misses",
			ray:    Ray{Origin: mgl32.Vec3{0, 3, 5}, Direction: mgl32.Vec3{0, 0, -1}},
			radius: 1,
			wantOK: false,
		},
		{
			name:   "offset center",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}},
			center: mgl32.Vec3{0, 0, 10},
			radius: 1,
			wantOK: true,
			wantT:  14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RaySphere(tt.ray, tt.center, tt.radius)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantT, got, tolerance)
			}
		})
	}
}

func TestSphereShapeMatchesRoutine(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}

	got, ok := Sphere{Radius: 1}.Intersect(ray)

	require.True(t, ok)
	assert.Equal(t, float32(4), got)
}

func TestUnionReportsNearestMember(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}}
	u := Union{
		Sphere{Center: mgl32.Vec3{0, 0, 10}, Radius: 1},
		Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1},
		Sphere{Center: mgl32.Vec3{10, 0, 0}, Radius: 1},
	}

	got, ok := u.Intersect(ray)
	require.True(t, ok)
	assert.InDelta(t, 4, got, tolerance)

	_, ok = Union{}.Intersect(ray)
	assert.False(t, ok)
}

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -10})

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, r.Direction)
	assert.Equal(t, mgl32.Vec3{1, 2, 1}, r.At(2))
}
