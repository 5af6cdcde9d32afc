// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/transform"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join(home, "Pictures"), cfg.PhotoDir)
	assert.Equal(t, filepath.Join(home, "Pictures", "StickerSmash"), cfg.SaveDir)
	assert.Equal(t, 440, cfg.CaptureHeight)
	assert.Equal(t, transform.DefaultBounds, cfg.Bounds())
	assert.Equal(t, 3*time.Second, cfg.NoticeTTL)
	assert.Equal(t, composite.Options{Height: 440, Quality: 1, Format: composite.PNG}, cfg.CaptureOptions())
	assert.IsType(t, composite.Raster{}, cfg.NewRenderer())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("STICKERSMASH_SAVE_DIR", "/tmp/out")
	t.Setenv("STICKERSMASH_FORMAT", "jpeg")
	t.Setenv("STICKERSMASH_CAPTURE_QUALITY", "0.7")
	t.Setenv("STICKERSMASH_RENDERER", "gpu")
	t.Setenv("STICKERSMASH_MAX_SCALE", "5")
	t.Setenv("STICKERSMASH_NOTICE_TTL", "1500ms")
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/tmp/out", cfg.SaveDir)
	assert.Equal(t, composite.JPEG, cfg.CaptureOptions().Format)
	assert.InDelta(t, 0.7, cfg.CaptureQuality, 1e-6)
	assert.IsType(t, composite.Headless{}, cfg.NewRenderer())
	assert.Equal(t, float32(5), cfg.Bounds().Max)
	assert.Equal(t, 1500*time.Millisecond, cfg.NoticeTTL)
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("STICKERSMASH_CAPTURE_HEIGHT", "tall")
	_, err := Load()
	assert.Error(t, err)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STICKERSMASH_FORMAT", "jpeg")
	cfg, err := Load()
	require.NoError(t, err)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-format", "png", "-height", "880"}))
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 880, cfg.CaptureHeight)
}

func TestFlagsCoverNumericSettings(t *testing.T) {
	t.Setenv("STICKERSMASH_CAPTURE_QUALITY", "0.5")
	cfg, err := Load()
	require.NoError(t, err)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	assert.Equal(t, "0.5", fs.Lookup("quality").DefValue)

	require.NoError(t, fs.Parse([]string{
		"-quality", "0.8",
		"-minscale", "0.25",
		"-maxscale", "4",
		"-stickersize", "64",
		"-noticettl", "5s",
	}))
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 0.8, cfg.CaptureQuality, 1e-6)
	assert.Equal(t, transform.Bounds{Min: 0.25, Max: 4}, cfg.Bounds())
	assert.Equal(t, 64, cfg.StickerSize)
	assert.Equal(t, 5*time.Second, cfg.NoticeTTL)

	assert.Error(t, fs.Parse([]string{"-maxscale", "big"}))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}
	for _, tc := range []struct {
		label  string
		mutate func(*Config)
	}{
		{label: "height", mutate: func(c *Config) { c.CaptureHeight = 0 }},
		{label: "quality", mutate: func(c *Config) { c.CaptureQuality = 1.5 }},
		{label: "format", mutate: func(c *Config) { c.Format = "bmp" }},
		{label: "renderer", mutate: func(c *Config) { c.Renderer = "vulkan" }},
		{label: "bounds", mutate: func(c *Config) { c.MinScale = 2 }},
		{label: "sticker size", mutate: func(c *Config) { c.StickerSize = -1 }},
		{label: "notice ttl", mutate: func(c *Config) { c.NoticeTTL = 0 }},
		{label: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	} {
		t.Run(tc.label, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	log := cfg.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")
}
