// SPDX-License-Identifier: Unlicense OR MIT

package sticker

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogRendersEveryEntry(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Entries)

	for _, e := range c.Entries {
		t.Run(e.Label, func(t *testing.T) {
			img, err := e.Image(64)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
			// The center is painted and the corners stay transparent.
			_, _, _, a := img.At(32, 40).RGBA()
			assert.NotZero(t, a)
			_, _, _, a = img.At(0, 0).RGBA()
			assert.Zero(t, a)
		})
	}
}

func TestLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	e, ok := c.Lookup("emoji:😀")
	require.True(t, ok)
	assert.Equal(t, "smile", e.Shape)
	_, ok = c.Lookup("emoji:missing")
	assert.False(t, ok)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	for _, tc := range []struct {
		label string
		data  string
	}{
		{label: "missing id", data: "stickers:\n  - shape: star\n"},
		{label: "duplicate id", data: "stickers:\n  - {id: a, shape: star}\n  - {id: a, shape: heart}\n"},
		{label: "unknown shape", data: "stickers:\n  - {id: a, shape: hexagon}\n"},
		{label: "not yaml", data: "stickers: [\n"},
	} {
		t.Run(tc.label, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestEntryImageBadColor(t *testing.T) {
	_, err := Entry{ID: "x", Shape: "star", Fill: "red"}.Image(8)
	assert.Error(t, err)
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 5, 7))
	img.Set(2, 2, color.NRGBA{G: 0xff, A: 0xff})
	f, err := os.Create(filepath.Join(dir, "cat.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), nil, 0o644))

	c, err := Default()
	require.NoError(t, err)
	n := len(c.Entries)
	require.NoError(t, c.AddDir(dir))
	require.Len(t, c.Entries, n+1)

	e, ok := c.Lookup("sticker:cat")
	require.True(t, ok)
	got, err := e.Image(64)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(5, 7), got.Bounds().Size())

	// Adding the same directory twice duplicates IDs.
	assert.Error(t, c.AddDir(dir))
	assert.NoError(t, c.AddDir(filepath.Join(dir, "missing")))
}
