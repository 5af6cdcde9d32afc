// SPDX-License-Identifier: Unlicense OR MIT

// Package sticker provides the catalog of stickers a user can place.
package sticker

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stickersmash/stickersmash/internal/capability"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry describes one sticker.
type Entry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	// Shape names built-in artwork. Ignored when File is set.
	Shape string `yaml:"shape"`
	Fill  string `yaml:"fill"`
	Ink   string `yaml:"ink"`
	// File is an image on disk.
	File string `yaml:"file"`
}

// Catalog is an ordered list of stickers.
type Catalog struct {
	Entries []Entry `yaml:"stickers"`
}

var errNoID = errors.New("sticker: entry without id")

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	c := new(Catalog)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("sticker: parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// AddDir appends every image file in dir as a sticker with the ID
// "sticker:<name>". A missing directory adds nothing.
func (c *Catalog) AddDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("sticker: %w", err)
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".png" && ext != ".webp") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		c.Entries = append(c.Entries, Entry{
			ID:    "sticker:" + name,
			Label: name,
			File:  filepath.Join(dir, e.Name()),
		})
	}
	return c.validate()
}

// Lookup returns the entry with the given ID.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Image returns the artwork of e. Built-in shapes are drawn in a
// size×size square.
func (e Entry) Image(size int) (image.Image, error) {
	if e.File != "" {
		return capability.DecodeFile(e.File)
	}
	fill, err := parseColor(e.Fill)
	if err != nil {
		return nil, fmt.Errorf("sticker %s: %w", e.ID, err)
	}
	ink, err := parseColor(e.Ink)
	if err != nil {
		return nil, fmt.Errorf("sticker %s: %w", e.ID, err)
	}
	draw, ok := shapes[e.Shape]
	if !ok {
		return nil, fmt.Errorf("sticker %s: unknown shape %q", e.ID, e.Shape)
	}
	return draw(size, fill, ink), nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, e := range c.Entries {
		if e.ID == "" {
			return errNoID
		}
		if seen[e.ID] {
			return fmt.Errorf("sticker: duplicate id %q", e.ID)
		}
		seen[e.ID] = true
		if e.File != "" {
			continue
		}
		if _, ok := shapes[e.Shape]; !ok {
			return fmt.Errorf("sticker %s: unknown shape %q", e.ID, e.Shape)
		}
	}
	return nil
}

// parseColor parses "#rrggbb". The empty string is opaque black.
func parseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{A: 0xff}, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
