// Package config loads and saves the viewer's TOML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/picking"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the settings file read when no path is given on the command line.
const DefaultPath = "config/viewer.toml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the whole settings file. Every section is optional; missing keys keep their defaults.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Picking  PickingConfig  `toml:"picking"`
	Renderer RendererConfig `toml:"renderer"`
	Assets   AssetsConfig   `toml:"assets"`
	Log      LogConfig      `toml:"log"`
	Profiler ProfilerConfig `toml:"profiler"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// CameraConfig holds the projection and the orbit controls. Zoom levels are exponents of
// camera.ZoomBase; the orbit radius is ZoomBase^level.
type CameraConfig struct {
	Fov          float32 `toml:"fov"`
	Near         float32 `toml:"near"`
	Far          float32 `toml:"far"`
	ZoomLevel    float32 `toml:"zoom_level"`
	MinZoomLevel float32 `toml:"min_zoom_level"`
	MaxZoomLevel float32 `toml:"max_zoom_level"`
	OrbitSpeed   float32 `toml:"orbit_speed"`
	PanSpeed     float32 `toml:"pan_speed"`
	ZoomStep     float32 `toml:"zoom_step"`
}

// PickingConfig holds the drag sensitivity, the gizmo proportions per unit of camera depth and the
// object count above which ray casts fan out across workers.
type PickingConfig struct {
	Sensitivity       float32 `toml:"sensitivity"`
	ShaftLength       float32 `toml:"shaft_length"`
	ShaftRadius       float32 `toml:"shaft_radius"`
	HeadHeight        float32 `toml:"head_height"`
	HeadRadius        float32 `toml:"head_radius"`
	ParallelThreshold int     `toml:"parallel_threshold"`
}

type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string     `toml:"present_mode"`
	MSAA        int        `toml:"msaa"`
	ClearColor  [4]float32 `toml:"clear_color"`
	Software    bool       `toml:"software"`
	Debug       bool       `toml:"debug"`
}

// AssetsConfig points at the directory holding shader and texture overrides. An empty Dir uses the
// built-in assets only.
type AssetsConfig struct {
	Dir            string `toml:"dir"`
	Watch          bool   `toml:"watch"`
	FlipTextures   bool   `toml:"flip_textures"`
	MaxTextureSize int    `toml:"max_texture_size"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ProfilerConfig struct {
	Enabled bool `toml:"enabled"`
	// Interval is a Go duration string such as "1s".
	Interval string `toml:"interval"`
}

// IntervalDuration parses Interval, returning one second when it is empty or malformed.
func (p ProfilerConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(p.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-viewer",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Fov:          camera.DefaultFov,
			Near:         camera.DefaultNear,
			Far:          camera.DefaultFar,
			ZoomLevel:    camera.DefaultZoomLevel,
			MinZoomLevel: camera.DefaultMinZoomLevel,
			MaxZoomLevel: camera.DefaultMaxZoomLevel,
			OrbitSpeed:   camera.DefaultOrbitSpeed,
			PanSpeed:     camera.DefaultPanSpeed,
			ZoomStep:     camera.DefaultZoomStepScale,
		},
		Picking: PickingConfig{
			Sensitivity:       picking.DefaultSensitivity,
			ShaftLength:       picking.DefaultGizmoDimensions.ShaftLength,
			ShaftRadius:       picking.DefaultGizmoDimensions.ShaftRadius,
			HeadHeight:        picking.DefaultGizmoDimensions.HeadHeight,
			HeadRadius:        picking.DefaultGizmoDimensions.HeadRadius,
			ParallelThreshold: 512,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        int(renderer.MSAA4x),
			ClearColor:  [4]float32{0.1, 0.1, 0.1, 1},
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Watch:          true,
			MaxTextureSize: 8192,
		},
		Log: LogConfig{
			Level: "info",
		},
		Profiler: ProfilerConfig{
			Interval: "1s",
		},
	}
}

// Load reads the settings file at path over the defaults. A missing file is not an error and yields
// Default(). Unknown keys are rejected so typos do not pass silently.
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - Config: the merged and validated settings
//   - error: a parse error, or an error wrapping ErrInvalid
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Default(), fmt.Errorf("parse %s:%d:%d: %w", path, row, col, err)
		}
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the parent directory if needed.
//
// Parameters:
//   - path: the settings file path
//   - cfg: the settings to write
//
// Returns:
//   - error: an error if encoding or writing fails
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every out-of-range value, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		invalid("camera.fov %v must be in (0, 180)", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera clip planes near=%v far=%v need 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.MinZoomLevel > c.Camera.MaxZoomLevel {
		invalid("camera zoom bounds [%v, %v] are reversed", c.Camera.MinZoomLevel, c.Camera.MaxZoomLevel)
	}

	if c.Picking.Sensitivity <= 0 {
		invalid("picking.sensitivity %v must be positive", c.Picking.Sensitivity)
	}
	if c.Picking.ShaftLength <= 0 || c.Picking.ShaftRadius <= 0 || c.Picking.HeadHeight <= 0 || c.Picking.HeadRadius <= 0 {
		invalid("picking gizmo dimensions must be positive")
	}

	if _, ok := renderer.ParsePresentMode(c.Renderer.PresentMode); !ok {
		invalid("renderer.present_mode %q must be \"vsync\" or \"uncapped\"", c.Renderer.PresentMode)
	}
	if !renderer.MSAASampleCount(c.Renderer.MSAA).Valid() {
		invalid("renderer.msaa %d must be 1, 4, 8 or 16", c.Renderer.MSAA)
	}

	if c.Assets.MaxTextureSize < 0 {
		invalid("assets.max_texture_size %d must not be negative", c.Assets.MaxTextureSize)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		invalid("log.level %q", c.Log.Level)
	}

	if c.Profiler.Interval != "" {
		if d, err := time.ParseDuration(c.Profiler.Interval); err != nil || d <= 0 {
			invalid("profiler.interval %q must be a positive duration", c.Profiler.Interval)
		}
	}

	return errors.Join(errs...)
}

// GizmoDimensions returns the picking section as gizmo proportions.
func (p PickingConfig) GizmoDimensions() picking.GizmoDimensions {
	return picking.GizmoDimensions{
		ShaftLength: p.ShaftLength,
		ShaftRadius: p.ShaftRadius,
		HeadHeight:  p.HeadHeight,
		HeadRadius:  p.HeadRadius,
	}
}
