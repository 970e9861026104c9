package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "spheres"
width = 640

[renderer]
present_mode = "uncapped"
msaa = 1
clear_color = [0.0, 0.0, 0.0, 1.0]

[picking]
sensitivity = 2.5

[profiler]
enabled = true
interval = "250ms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spheres", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, Default().Window.Height, cfg.Window.Height, "unset keys keep their default")
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, float32(2.5), cfg.Picking.Sensitivity)
	assert.True(t, cfg.Profiler.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Profiler.IntervalDuration())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[window]\nwidht = 640\n")

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "[window\nwidth = 640\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[camera]\nnear = 10.0\nfar = 1.0\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.Fov = 180 }},
		{"near behind camera", func(c *Config) { c.Camera.Near = 0 }},
		{"reversed zoom bounds", func(c *Config) { c.Camera.MinZoomLevel, c.Camera.MaxZoomLevel = 10, 1 }},
		{"zero sensitivity", func(c *Config) { c.Picking.Sensitivity = 0 }},
		{"negative gizmo", func(c *Config) { c.Picking.HeadRadius = -1 }},
		{"present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }},
		{"texture size", func(c *Config) { c.Assets.MaxTextureSize = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"profiler interval", func(c *Config) { c.Profiler.Interval = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Renderer.MSAA = 3

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "renderer.msaa")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "viewer.toml")
	cfg := Default()
	cfg.Assets.Dir = "/srv/assets"
	cfg.Camera.Fov = 60

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestIntervalDurationFallback(t *testing.T) {
	assert.Equal(t, time.Second, ProfilerConfig{}.IntervalDuration())
	assert.Equal(t, time.Second, ProfilerConfig{Interval: "-2s"}.IntervalDuration())
}

func TestGizmoDimensions(t *testing.T) {
	dims := Default().Picking.GizmoDimensions()
	assert.Equal(t, Default().Picking.ShaftLength, dims.ShaftLength)
	assert.Equal(t, Default().Picking.HeadRadius, dims.HeadRadius)
}

func TestShippedSettingsMatchDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
