// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"

	"gioui.org/op/clip"
	"gioui.org/unit"

	"github.com/stickersmash/stickersmash/internal/asset"
	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/editor"
	"github.com/stickersmash/stickersmash/internal/gesture"
)

// Canvas dimensions at scale 1.
const (
	CanvasWidth  = unit.Dp(320)
	CanvasHeight = unit.Dp(440)
	canvasRadius = unit.Dp(18)
)

// Canvas draws the background and sticker of an Editor and routes
// sticker gestures back to it. It is the Surface captured on export.
type Canvas struct {
	// StickerSize is the sticker edge at the identity transform.
	StickerSize unit.Dp

	gesture  gesture.Sticker
	scene    composite.Scene
	attached bool
}

// Scene returns the scene of the last layout.
func (c *Canvas) Scene() (composite.Scene, bool) {
	return c.scene, c.attached
}

func (c *Canvas) Layout(gtx C, ed *editor.Editor) D {
	for _, e := range c.gesture.Events(gtx) {
		switch e.Type {
		case gesture.Drag:
			ed.Drag(e.Delta.X, e.Delta.Y)
		case gesture.Pinch:
			ed.Pinch(e.Factor)
		}
	}

	size := gtx.Constraints.Constrain(image.Pt(gtx.Dp(CanvasWidth), gtx.Dp(CanvasHeight)))
	sc := composite.Scene{
		Size:      size,
		Radius:    gtx.Dp(canvasRadius),
		Transform: ed.Transform(),
	}
	sess := ed.Session()
	assets := ed.Assets()
	if ref := sess.BackgroundOrPlaceholder(); ref != "" {
		sc.Background = storeImage(assets, ref)
	}
	if sess.Sticker != "" {
		sc.Sticker = storeImage(assets, sess.Sticker)
		side := gtx.Dp(c.StickerSize)
		// The sticker starts centered in the upper part of the photo.
		origin := image.Pt((size.X-side)/2, size.Y/5)
		sc.StickerBox = image.Rectangle{Min: origin, Max: origin.Add(image.Pt(side, side))}
	}
	sc.Paint(gtx.Ops)

	if area := sc.StickerBounds(); !area.Empty() {
		// A gesture in progress listens on the whole canvas so that a
		// second finger joins it wherever it lands.
		if c.gesture.Active() {
			area = image.Rectangle{Max: size}
		}
		st := clip.Rect(area).Push(gtx.Ops)
		c.gesture.Add(gtx.Ops)
		st.Pop()
	}

	c.scene, c.attached = sc, true
	return D{Size: size}
}

func storeImage(s *asset.Store, ref string) composite.Image {
	img, ok := s.Image(ref)
	if !ok {
		return composite.Image{}
	}
	op, _ := s.Op(ref)
	return composite.Image{Src: img, Op: op}
}
