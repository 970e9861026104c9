package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/cache"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// MeshID identifies a procedural mesh in the mesh cache.
type MeshID uint32

const (
	PrimitiveCone MeshID = iota
	PrimitiveCylinder
	PrimitiveSkybox
	PrimitiveCube
	PrimitiveSphere
	PrimitiveCoordinateSystem
	PrimitiveSphereNormals
)

func (id MeshID) String() string {
	switch id {
	case PrimitiveCone:
		return "cone"
	case PrimitiveCylinder:
		return "cylinder"
	case PrimitiveSkybox:
		return "skybox"
	case PrimitiveCube:
		return "cube"
	case PrimitiveSphere:
		return "sphere"
	case PrimitiveCoordinateSystem:
		return "coordinate-system"
	case PrimitiveSphereNormals:
		return "sphere-normals"
	default:
		return fmt.Sprintf("mesh(%d)", uint32(id))
	}
}

// ShaderID identifies a program in the shader cache.
type ShaderID uint32

const (
	ShaderShaded ShaderID = iota
	ShaderFlat
	ShaderSkybox
	ShaderDebugNormals
	// ShaderOverlay is the flat program drawn on top of everything, used for the gizmo.
	ShaderOverlay
)

func (id ShaderID) String() string {
	if spec, ok := shaderTable[id]; ok {
		return spec.name
	}
	return fmt.Sprintf("shader(%d)", uint32(id))
}

// TextureID identifies a texture in the texture cache.
type TextureID uint32

const (
	// TextureWhite is a 1x1 white texture bound by programs that do not sample.
	TextureWhite TextureID = iota
	TextureChecker
	TextureSkybox
)

func (id TextureID) String() string {
	if spec, ok := textureTable[id]; ok {
		return spec.name
	}
	return fmt.Sprintf("texture(%d)", uint32(id))
}

var (
	//go:embed assets/shaded.wgsl
	shadedSource string

	//go:embed assets/flat.wgsl
	flatSource string

	//go:embed assets/skybox.wgsl
	skyboxSource string

	//go:embed assets/debug_normals.wgsl
	debugNormalsSource string
)

// shaderSpec binds a program id to its asset file, its built-in body and its fixed-function state.
type shaderSpec struct {
	name    string
	file    string
	builtin string
	options []pipeline.PipelineBuilderOption
}

var shaderTable = map[ShaderID]shaderSpec{
	ShaderShaded: {name: "shaded", file: "shaded.wgsl", builtin: shadedSource},
	ShaderFlat:   {name: "flat", file: "flat.wgsl", builtin: flatSource},
	ShaderSkybox: {
		name:    "skybox",
		file:    "skybox.wgsl",
		builtin: skyboxSource,
		options: []pipeline.PipelineBuilderOption{
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithDepth(false, false),
		},
	},
	ShaderDebugNormals: {
		name:    "debug-normals",
		file:    "debug_normals.wgsl",
		builtin: debugNormalsSource,
		options: []pipeline.PipelineBuilderOption{
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
			pipeline.WithCullMode(wgpu.CullModeNone),
		},
	},
	ShaderOverlay: {
		name:    "overlay",
		file:    "flat.wgsl",
		builtin: flatSource,
		options: []pipeline.PipelineBuilderOption{
			pipeline.WithDepth(false, false),
		},
	},
}

// textureSpec binds a texture id to its asset file and the image generated when the file is absent.
type textureSpec struct {
	name     string
	file     string
	fallback func() common.TextureData
}

var textureTable = map[TextureID]textureSpec{
	TextureWhite:   {name: "white", fallback: func() common.TextureData { return SolidTexture(1, 1, [4]byte{255, 255, 255, 255}) }},
	TextureChecker: {name: "checker", file: "checker.png", fallback: func() common.TextureData { return CheckerTexture(256, 32) }},
	TextureSkybox:  {name: "skybox", file: "skybox.png", fallback: func() common.TextureData { return SkyTexture(256, 128) }},
}

// meshTable maps each primitive id to its generator.
var meshTable = map[MeshID]func() common.MeshData{
	PrimitiveCone:             func() common.MeshData { return ConeMesh(radialSegments) },
	PrimitiveCylinder:         func() common.MeshData { return CylinderMesh(radialSegments) },
	PrimitiveSkybox:           SkyboxMesh,
	PrimitiveCube:             CubeMesh,
	PrimitiveSphere:           func() common.MeshData { return SphereMesh(sphereSectors, sphereStacks) },
	PrimitiveCoordinateSystem: CoordinateSystemMesh,
	PrimitiveSphereNormals: func() common.MeshData {
		return NormalsMesh(SphereMesh(sphereSectors, sphereStacks), normalLineLength)
	},
}

// AssetSource reads override files from the asset directory. Missing files are reported with an
// error matching loader.ErrNotFound.
type AssetSource interface {
	// ReadText returns the contents of a text asset.
	ReadText(name string) (string, error)

	// ReadTexture decodes an image asset into RGBA8 pixels.
	ReadTexture(name string) (common.TextureData, error)
}

// meshRegistry builds the mesh constructors uploading each primitive through backend.
func meshRegistry(backend Backend) *cache.Registry[MeshID, Mesh] {
	r := cache.NewRegistry[MeshID, Mesh]()
	for id, generate := range meshTable {
		r.Register(id, func(id MeshID) (Mesh, error) {
			return backend.CreateMesh(id.String(), generate())
		})
	}
	return r
}

// shaderRegistry builds the program constructors. An asset file overrides the built-in body; if the
// override fails to compile the built-in body is used instead.
func shaderRegistry(backend Backend, assets AssetSource, logger *slog.Logger) *cache.Registry[ShaderID, pipeline.Pipeline] {
	r := cache.NewRegistry[ShaderID, pipeline.Pipeline]()
	for id, spec := range shaderTable {
		r.Register(id, func(id ShaderID) (pipeline.Pipeline, error) {
			if body, ok := readOverride(assets, spec.file, logger); ok {
				p := pipeline.NewPipeline(spec.name, GPUUniformSource+"\n"+body, spec.options...)
				err := backend.RegisterPipeline(p)
				if err == nil {
					return p, nil
				}
				logger.Warn("shader override failed to compile, using built-in", "shader", spec.name, "file", spec.file, "error", err)
			}

			p := pipeline.NewPipeline(spec.name, GPUUniformSource+"\n"+spec.builtin, spec.options...)
			if err := backend.RegisterPipeline(p); err != nil {
				return nil, fmt.Errorf("register %s: %w", spec.name, err)
			}
			return p, nil
		})
	}
	return r
}

// textureRegistry builds the texture constructors. An asset file replaces the generated image.
func textureRegistry(backend Backend, assets AssetSource, logger *slog.Logger) *cache.Registry[TextureID, Texture] {
	r := cache.NewRegistry[TextureID, Texture]()
	for id, spec := range textureTable {
		r.Register(id, func(id TextureID) (Texture, error) {
			data, ok := readTextureOverride(assets, spec.file, logger)
			if !ok {
				data = spec.fallback()
			}
			return backend.CreateTexture(spec.name, data)
		})
	}
	return r
}

func readOverride(assets AssetSource, file string, logger *slog.Logger) (string, bool) {
	if assets == nil || file == "" {
		return "", false
	}
	body, err := assets.ReadText(file)
	switch {
	case err == nil:
		return body, true
	case errors.Is(err, loader.ErrNotFound):
		return "", false
	default:
		logger.Warn("could not read shader override", "file", file, "error", err)
		return "", false
	}
}

func readTextureOverride(assets AssetSource, file string, logger *slog.Logger) (common.TextureData, bool) {
	if assets == nil || file == "" {
		return common.TextureData{}, false
	}
	data, err := assets.ReadTexture(file)
	switch {
	case err == nil:
		return data, true
	case errors.Is(err, loader.ErrNotFound):
		return common.TextureData{}, false
	default:
		logger.Warn("could not load texture override, using generated image", "file", file, "error", err)
		return common.TextureData{}, false
	}
}

// shadersForFile returns the programs built from the named asset file.
func shadersForFile(file string) []ShaderID {
	var ids []ShaderID
	for id, spec := range shaderTable {
		if spec.file == file {
			ids = append(ids, id)
		}
	}
	return ids
}

// texturesForFile returns the textures loaded from the named asset file.
func texturesForFile(file string) []TextureID {
	var ids []TextureID
	for id, spec := range textureTable {
		if spec.file != "" && spec.file == file {
			ids = append(ids, id)
		}
	}
	return ids
}

// SolidTexture fills a width x height texture with one colour.
func SolidTexture(width, height uint32, rgba [4]byte) common.TextureData {
	pixels := make([]byte, int(width*height)*4)
	for i := 0; i < len(pixels); i += 4 {
		copy(pixels[i:i+4], rgba[:])
	}
	return common.TextureData{Pixels: pixels, Width: width, Height: height}
}

// CheckerTexture builds a size x size grey checkerboard with square cells of cell pixels.
func CheckerTexture(size, cell uint32) common.TextureData {
	pixels := make([]byte, int(size*size)*4)
	for y := range size {
		for x := range size {
			v := byte(200)
			if (x/cell+y/cell)%2 == 1 {
				v = 90
			}
			i := int(y*size+x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, 255
		}
	}
	return common.TextureData{Pixels: pixels, Width: size, Height: size}
}

// SkyTexture builds an equirectangular gradient from a blue zenith to a pale horizon and a dark ground.
func SkyTexture(width, height uint32) common.TextureData {
	zenith := [3]float32{40, 90, 170}
	horizon := [3]float32{190, 210, 230}
	ground := [3]float32{45, 45, 50}

	pixels := make([]byte, int(width*height)*4)
	for y := range height {
		v := float32(y) / float32(height-1)
		var c [3]float32
		if v < 0.5 {
			c = lerp3(zenith, horizon, v*2)
		} else {
			c = lerp3(horizon, ground, (v-0.5)*2)
		}
		for x := range width {
			i := int(y*width+x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = byte(c[0]), byte(c[1]), byte(c[2]), 255
		}
	}
	return common.TextureData{Pixels: pixels, Width: width, Height: height}
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t, a[2] + (b[2]-a[2])*t}
}
