// SPDX-License-Identifier: Unlicense OR MIT

// Package asset resolves image references to decoded images.
package asset

import (
	"image"
	"image/color"

	"gioui.org/op/paint"

	"github.com/stickersmash/stickersmash/internal/session"
)

// PlaceholderSize is the size in pixels of the generated placeholder
// background, matching the 320×440 canvas.
var PlaceholderSize = image.Pt(320, 440)

// Store maps references to images and their paint operations. It is
// only accessed from the UI event loop.
type Store struct {
	images map[string]image.Image
	ops    map[string]paint.ImageOp
}

// NewStore returns a Store holding the placeholder background.
func NewStore() *Store {
	s := &Store{
		images: make(map[string]image.Image),
		ops:    make(map[string]paint.ImageOp),
	}
	s.Put(session.PlaceholderBackground, Placeholder(PlaceholderSize))
	return s
}

// Put registers img under ref, replacing any previous image.
func (s *Store) Put(ref string, img image.Image) {
	s.images[ref] = img
	delete(s.ops, ref)
}

// Image returns the image registered under ref.
func (s *Store) Image(ref string) (image.Image, bool) {
	img, ok := s.images[ref]
	return img, ok
}

// Op returns a cached paint operation for ref.
func (s *Store) Op(ref string) (paint.ImageOp, bool) {
	if op, ok := s.ops[ref]; ok {
		return op, true
	}
	img, ok := s.images[ref]
	if !ok {
		return paint.ImageOp{}, false
	}
	op := paint.NewImageOp(img)
	s.ops[ref] = op
	return op, true
}

// Placeholder draws the default background: a dusk gradient.
func Placeholder(size image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rectangle{Max: size})
	top := color.NRGBA{R: 0x4f, G: 0x6d, B: 0x7a, A: 0xff}
	bottom := color.NRGBA{R: 0xf2, G: 0xa6, B: 0x5a, A: 0xff}
	for y := 0; y < size.Y; y++ {
		t := float32(y) / float32(max(size.Y-1, 1))
		c := color.NRGBA{
			R: mix(top.R, bottom.R, t),
			G: mix(top.G, bottom.G, t),
			B: mix(top.B, bottom.B, t),
			A: 0xff,
		}
		for x := 0; x < size.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func mix(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}
