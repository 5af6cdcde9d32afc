// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the app configuration from the environment and
// command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/transform"
)

// Prefix of the environment variables.
const Prefix = "STICKERSMASH_"

type Config struct {
	// SaveDir is the photo library of native builds.
	SaveDir string `env:"SAVE_DIR"`
	// PhotoDir is listed by the photo chooser.
	PhotoDir string `env:"PHOTO_DIR"`
	// StickerDir holds extra PNG or WebP stickers.
	StickerDir string `env:"STICKER_DIR"`

	CaptureHeight  int     `env:"CAPTURE_HEIGHT" envDefault:"440"`
	CaptureQuality float32 `env:"CAPTURE_QUALITY" envDefault:"1"`
	Format         string  `env:"FORMAT" envDefault:"png"`
	// Renderer is "raster" or "gpu".
	Renderer string `env:"RENDERER" envDefault:"raster"`

	MinScale float32 `env:"MIN_SCALE" envDefault:"0.5"`
	MaxScale float32 `env:"MAX_SCALE" envDefault:"3"`
	// StickerSize is the sticker edge in dp at scale 1.
	StickerSize int `env:"STICKER_SIZE" envDefault:"40"`

	NoticeTTL time.Duration `env:"NOTICE_TTL" envDefault:"3s"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment and fills in
// directory defaults under the user's home.
func Load() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	pictures := "."
	if home, err := os.UserHomeDir(); err == nil {
		pictures = filepath.Join(home, "Pictures")
	}
	if cfg.PhotoDir == "" {
		cfg.PhotoDir = pictures
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = filepath.Join(pictures, "StickerSmash")
	}
	return &cfg, nil
}

// RegisterFlags binds flags to c. Flag defaults are the current values,
// so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.SaveDir, "savedir", c.SaveDir, "directory receiving saved images")
	fs.StringVar(&c.PhotoDir, "photodir", c.PhotoDir, "directory of photos to choose from")
	fs.StringVar(&c.StickerDir, "stickerdir", c.StickerDir, "directory of extra stickers")
	fs.IntVar(&c.CaptureHeight, "height", c.CaptureHeight, "height in pixels of saved images")
	fs.StringVar(&c.Format, "format", c.Format, "format of saved images (png or jpeg)")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "capture renderer (raster or gpu)")
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "log level (debug, info, warn, error)")
	fs.Var((*float32Value)(&c.CaptureQuality), "quality", "quality of lossy saved images, in (0, 1]")
	fs.Var((*float32Value)(&c.MinScale), "minscale", "smallest sticker scale")
	fs.Var((*float32Value)(&c.MaxScale), "maxscale", "largest sticker scale")
	fs.IntVar(&c.StickerSize, "stickersize", c.StickerSize, "sticker edge in dp at scale 1")
	fs.DurationVar(&c.NoticeTTL, "noticettl", c.NoticeTTL, "how long notices stay on screen")
}

// float32Value is a flag.Value for float32 fields.
type float32Value float32

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}

// Validate reports inconsistent settings.
func (c *Config) Validate() error {
	var errs []error
	if c.CaptureHeight <= 0 {
		errs = append(errs, fmt.Errorf("capture height %d must be positive", c.CaptureHeight))
	}
	if c.CaptureQuality <= 0 || c.CaptureQuality > 1 {
		errs = append(errs, fmt.Errorf("capture quality %v must be in (0, 1]", c.CaptureQuality))
	}
	if _, err := composite.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Renderer != "raster" && c.Renderer != "gpu" {
		errs = append(errs, fmt.Errorf("unknown renderer %q", c.Renderer))
	}
	if !c.Bounds().Valid() {
		errs = append(errs, fmt.Errorf("scale bounds [%v, %v] must contain 1", c.MinScale, c.MaxScale))
	}
	if c.StickerSize <= 0 {
		errs = append(errs, fmt.Errorf("sticker size %d must be positive", c.StickerSize))
	}
	if c.NoticeTTL <= 0 {
		errs = append(errs, fmt.Errorf("notice ttl %v must be positive", c.NoticeTTL))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Bounds returns the sticker scale limits.
func (c *Config) Bounds() transform.Bounds {
	return transform.Bounds{Min: c.MinScale, Max: c.MaxScale}
}

// CaptureOptions returns the options of exported images.
func (c *Config) CaptureOptions() composite.Options {
	f, _ := composite.ParseFormat(c.Format)
	return composite.Options{
		Height:  c.CaptureHeight,
		Quality: c.CaptureQuality,
		Format:  f,
	}
}

// NewRenderer returns the configured capture renderer.
func (c *Config) NewRenderer() composite.Renderer {
	if c.Renderer == "gpu" {
		return composite.Headless{}
	}
	return composite.Raster{}
}

// NewLogger returns a text logger at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
