// Command viewer opens an interactive 3D scene: orbit the camera, click to select an object and drag
// the gizmo arrows to move it along an axis.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/engine/picking"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML settings file")
	preset := flag.String("preset", scene.PresetDefault, "scene preset to open with")
	flag.Parse()

	os.Exit(run(*configPath, *preset))
}

func run(configPath, preset string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("could not load settings", "path", configPath, "error", err)
		return 1
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	objects, err := scene.Preset(preset)
	if err != nil {
		logger.Error("unknown scene preset", "preset", preset, "available", scene.Presets())
		return 1
	}

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithLogger(logger),
	)
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warn("could not close window", "error", err)
		}
	}()

	// ── Renderer ────────────────────────────────────────────────────────
	backend, err := renderer.NewWGPUBackend(win.SurfaceDescriptor(),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithBackendLogger(logger),
	)
	if err != nil {
		logger.Error("could not initialise the GPU", "error", err)
		return 1
	}

	assets := loader.NewLoader(cfg.Assets.Dir,
		loader.WithFlipVertical(cfg.Assets.FlipTextures),
		loader.WithMaxTextureSize(cfg.Assets.MaxTextureSize),
		loader.WithLogger(logger),
	)

	presentMode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	r := renderer.NewRenderer(backend,
		renderer.WithPresentMode(presentMode),
		renderer.WithSurfaceSize(win.Width(), win.Height()),
		renderer.WithClearColor(common.Color(cfg.Renderer.ClearColor)),
		renderer.WithAssets(assets),
		renderer.WithDebug(cfg.Renderer.Debug),
		renderer.WithLogger(logger),
	)
	defer r.Close()

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.Fov),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithViewport(win.Width(), win.Height()),
		camera.WithController(camera.NewCameraController(
			camera.WithZoomLevel(cfg.Camera.ZoomLevel),
			camera.WithZoomBounds(cfg.Camera.MinZoomLevel, cfg.Camera.MaxZoomLevel),
			camera.WithOrbitSpeed(cfg.Camera.OrbitSpeed),
			camera.WithPanSpeed(cfg.Camera.PanSpeed),
			camera.WithZoomStepScale(cfg.Camera.ZoomStep),
		)),
	)

	// ── Scene + picking ─────────────────────────────────────────────────
	sc := scene.NewScene(preset,
		scene.WithObjects(objects...),
		scene.WithParallelThreshold(cfg.Picking.ParallelThreshold),
		scene.WithLogger(logger),
	)
	defer sc.Close()

	picker := picking.NewController(sc, cam,
		picking.WithSensitivity(cfg.Picking.Sensitivity),
		picking.WithGizmoDimensions(cfg.Picking.GizmoDimensions()),
		picking.WithSelectionCallback(func(id scene.ObjectID, ok bool) {
			if obj, found := sc.Get(id); ok && found {
				logger.Info("selected", "object", obj.Name, "position", obj.Position)
			}
		}),
		picking.WithLogger(logger),
	)

	// ── Hot reload ──────────────────────────────────────────────────────
	var watcher loader.Watcher
	if cfg.Assets.Watch && cfg.Assets.Dir != "" {
		watcher, err = loader.NewWatcher(cfg.Assets.Dir, loader.WithWatcherLogger(logger))
		if err != nil {
			logger.Warn("asset hot reload disabled", "dir", cfg.Assets.Dir, "error", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(engine.Context{
		Window:     win,
		Input:      win.Input(),
		Camera:     cam,
		Scene:      sc,
		Controller: picker,
		Renderer:   r,
		Watcher:    watcher,
	},
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithProfileInterval(cfg.Profiler.IntervalDuration()),
		engine.WithLogger(logger),
	)

	logger.Info("viewer started",
		"config", configPath,
		"preset", preset,
		"controls", "LMB select/drag, MMB orbit, RMB pan, wheel zoom, D debug, R reset, 1/2 presets, Esc quit",
	)
	eng.Run()
	return 0
}
