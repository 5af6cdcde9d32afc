// SPDX-License-Identifier: Unlicense OR MIT

package composite

import (
	"fmt"
	"image"

	"gioui.org/f32"
	"gioui.org/gpu/headless"
	"gioui.org/op"
)

// Headless renders scenes with the Gio GPU renderer into an offscreen
// window, producing exactly what the canvas shows.
type Headless struct{}

// Render implements Renderer.
func (Headless) Render(sc Scene, size image.Point) (*image.RGBA, error) {
	w, err := headless.NewWindow(size.X, size.Y)
	if err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}
	defer w.Release()

	var ops op.Ops
	op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(
		float32(size.X)/float32(sc.Size.X),
		float32(size.Y)/float32(sc.Size.Y),
	))).Add(&ops)
	sc.Paint(&ops)
	if err := w.Frame(&ops); err != nil {
		return nil, fmt.Errorf("headless: frame: %w", err)
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	if err := w.Screenshot(img); err != nil {
		return nil, fmt.Errorf("headless: screenshot: %w", err)
	}
	return img, nil
}
