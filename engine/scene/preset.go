package scene

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Preset names accepted by Preset.
const (
	PresetDefault = "default"
	PresetGrid    = "grid"
)

var presets = map[string]func() []Object{
	PresetDefault: defaultPreset,
	PresetGrid:    gridPreset,
}

// Presets returns the registered preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset builds a fresh object set for the named preset, suitable for Scene.Reset.
//
// Parameters:
//   - name: the preset name
//
// Returns:
//   - []Object: the preset's objects
//   - error: if the name is not registered
func Preset(name string) ([]Object, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown preset %q", name)
	}
	return build(), nil
}

// defaultPreset is a unit sphere at the origin lit by four lights above its corners.
func defaultPreset() []Object {
	objects := []Object{
		NewSphere("sphere", mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec3{0.8, 0.8, 0.8}),
	}
	corners := []mgl32.Vec3{{1, 1, 1}, {-1, 1, 1}, {-1, 1, -1}, {1, 1, -1}}
	colors := []mgl32.Vec3{{1, 0.9, 0.8}, {0.8, 0.9, 1}, {1, 1, 1}, {0.9, 1, 0.9}}
	for i, p := range corners {
		objects = append(objects, NewLight(fmt.Sprintf("light-%d", i), p, colors[i]))
	}
	return objects
}

// gridPreset is a 5x5 grid of small spheres on the XZ plane with a single light overhead.
func gridPreset() []Object {
	const n = 5
	const spacing float32 = 1.5
	objects := make([]Object, 0, n*n+1)
	for row := range n {
		for col := range n {
			x := (float32(col) - (n-1)/2.0) * spacing
			z := (float32(row) - (n-1)/2.0) * spacing
			color := mgl32.Vec3{float32(col) / (n - 1), 0.5, float32(row) / (n - 1)}
			objects = append(objects, NewSphere(fmt.Sprintf("sphere-%d-%d", row, col), mgl32.Vec3{x, 0, z}, 0.4, color))
		}
	}
	objects = append(objects, NewLight("light", mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 1, 1}))
	return objects
}
