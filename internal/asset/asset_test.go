// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickersmash/stickersmash/internal/session"
)

func TestStore(t *testing.T) {
	s := NewStore()
	ph, ok := s.Image(session.PlaceholderBackground)
	require.True(t, ok)
	assert.Equal(t, PlaceholderSize, ph.Bounds().Size())

	_, ok = s.Op("photoA")
	assert.False(t, ok)

	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	s.Put("photoA", img)
	op, ok := s.Op("photoA")
	require.True(t, ok)
	assert.Equal(t, image.Pt(3, 3), op.Size())

	// Replacing an image drops its cached operation.
	s.Put("photoA", image.NewNRGBA(image.Rect(0, 0, 5, 2)))
	op, ok = s.Op("photoA")
	require.True(t, ok)
	assert.Equal(t, image.Pt(5, 2), op.Size())
}

func TestPlaceholderGradient(t *testing.T) {
	img := Placeholder(image.Pt(4, 10))
	assert.Equal(t, color.NRGBA{R: 0x4f, G: 0x6d, B: 0x7a, A: 0xff}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0xf2, G: 0xa6, B: 0x5a, A: 0xff}, img.NRGBAAt(3, 9))
}
