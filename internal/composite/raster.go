// SPDX-License-Identifier: Unlicense OR MIT

package composite

import (
	"image"
	"image/draw"

	"gioui.org/f32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Raster renders scenes in software. It needs no GPU and produces the
// same geometry as Scene.Paint.
type Raster struct {
	// Interpolator scales the images. Nil means CatmullRom.
	Interpolator xdraw.Interpolator
}

// Render implements Renderer.
func (r Raster) Render(sc Scene, size image.Point) (*image.RGBA, error) {
	interp := r.Interpolator
	if interp == nil {
		interp = xdraw.CatmullRom
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	scale := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(
		float32(size.X)/float32(sc.Size.X),
		float32(size.Y)/float32(sc.Size.Y),
	))
	mask := roundedMask(size, float32(sc.Radius)*float32(size.Y)/float32(sc.Size.Y))
	opts := &xdraw.Options{DstMask: mask}
	if bg := sc.Background.Src; bg != nil {
		s2d := aff3(scale.Mul(sc.backgroundAffine()), bg.Bounds().Min)
		interp.Transform(dst, s2d, bg, bg.Bounds(), draw.Over, opts)
	}
	if st := sc.Sticker.Src; st != nil && !sc.StickerBox.Empty() {
		s2d := aff3(scale.Mul(sc.stickerAffine()), st.Bounds().Min)
		interp.Transform(dst, s2d, st, st.Bounds(), draw.Over, opts)
	}
	return dst, nil
}

// aff3 converts a transformation of zero-origin image pixels into one
// of image coordinates starting at origin.
func aff3(a f32.Affine2D, origin image.Point) f64.Aff3 {
	a = a.Mul(f32.Affine2D{}.Offset(f32.Pt(-float32(origin.X), -float32(origin.Y))))
	sx, hx, ox, hy, sy, oy := a.Elems()
	return f64.Aff3{
		float64(sx), float64(hx), float64(ox),
		float64(hy), float64(sy), float64(oy),
	}
}

// roundedMask returns the alpha mask of a size rectangle with corners
// of radius r.
func roundedMask(size image.Point, r float32) *image.Alpha {
	mask := image.NewAlpha(image.Rectangle{Max: size})
	w, h := float32(size.X), float32(size.Y)
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	k := r * (1 - 0.5522847498)
	z := vector.NewRasterizer(size.X, size.Y)
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.CubeTo(w-k, 0, w, k, w, r)
	z.LineTo(w, h-r)
	z.CubeTo(w, h-k, w-k, h, w-r, h)
	z.LineTo(r, h)
	z.CubeTo(k, h, 0, h-k, 0, h-r)
	z.LineTo(0, r)
	z.CubeTo(0, k, k, 0, r, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
