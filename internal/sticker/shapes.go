// SPDX-License-Identifier: Unlicense OR MIT

package sticker

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

type shapeFunc func(size int, fill, ink color.NRGBA) *image.NRGBA

var shapes = map[string]shapeFunc{
	"smile":     smile,
	"cool":      cool,
	"surprised": surprised,
	"heart":     heart,
	"star":      star,
	"circle":    circle,
}

// Magic constant for approximating a quarter circle with a cubic Bézier.
const kappa = 0.5522847498

// canvas rasterizes paths in unit coordinates onto a square image.
type canvas struct {
	img  *image.NRGBA
	z    *vector.Rasterizer
	size float32
}

func newCanvas(size int) *canvas {
	return &canvas{
		img:  image.NewNRGBA(image.Rect(0, 0, size, size)),
		z:    vector.NewRasterizer(size, size),
		size: float32(size),
	}
}

func (c *canvas) begin() {
	c.z.Reset(c.img.Rect.Dx(), c.img.Rect.Dy())
}

func (c *canvas) fill(col color.NRGBA) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *canvas) moveTo(x, y float32) { c.z.MoveTo(x*c.size, y*c.size) }
func (c *canvas) lineTo(x, y float32) { c.z.LineTo(x*c.size, y*c.size) }

func (c *canvas) quadTo(x1, y1, x, y float32) {
	c.z.QuadTo(x1*c.size, y1*c.size, x*c.size, y*c.size)
}

func (c *canvas) cubeTo(x1, y1, x2, y2, x, y float32) {
	c.z.CubeTo(x1*c.size, y1*c.size, x2*c.size, y2*c.size, x*c.size, y*c.size)
}

// ellipse adds a closed ellipse centered at (cx, cy).
func (c *canvas) ellipse(cx, cy, rx, ry float32) {
	kx, ky := rx*kappa, ry*kappa
	c.moveTo(cx+rx, cy)
	c.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	c.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	c.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	c.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	c.z.ClosePath()
}

func (c *canvas) disc(cx, cy, r float32, col color.NRGBA) {
	c.begin()
	c.ellipse(cx, cy, r, r)
	c.fill(col)
}

func (c *canvas) face(fill color.NRGBA) {
	c.disc(0.5, 0.5, 0.46, fill)
}

// grin draws a crescent mouth.
func (c *canvas) grin(ink color.NRGBA) {
	c.begin()
	c.moveTo(0.27, 0.58)
	c.quadTo(0.5, 0.92, 0.73, 0.58)
	c.quadTo(0.5, 0.74, 0.27, 0.58)
	c.z.ClosePath()
	c.fill(ink)
}

func smile(size int, fill, ink color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.face(fill)
	c.begin()
	c.ellipse(0.35, 0.38, 0.05, 0.08)
	c.ellipse(0.65, 0.38, 0.05, 0.08)
	c.fill(ink)
	c.grin(ink)
	return c.img
}

func cool(size int, fill, ink color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.face(fill)
	c.begin()
	// Lenses and bridge.
	c.moveTo(0.16, 0.32)
	c.lineTo(0.84, 0.32)
	c.lineTo(0.84, 0.36)
	c.lineTo(0.16, 0.36)
	c.z.ClosePath()
	c.moveTo(0.18, 0.34)
	c.lineTo(0.46, 0.34)
	c.quadTo(0.46, 0.52, 0.32, 0.52)
	c.quadTo(0.18, 0.52, 0.18, 0.34)
	c.z.ClosePath()
	c.moveTo(0.54, 0.34)
	c.lineTo(0.82, 0.34)
	c.quadTo(0.82, 0.52, 0.68, 0.52)
	c.quadTo(0.54, 0.52, 0.54, 0.34)
	c.z.ClosePath()
	c.fill(ink)
	c.grin(ink)
	return c.img
}

func surprised(size int, fill, ink color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.face(fill)
	c.begin()
	c.ellipse(0.35, 0.36, 0.06, 0.06)
	c.ellipse(0.65, 0.36, 0.06, 0.06)
	c.fill(ink)
	c.disc(0.5, 0.68, 0.12, ink)
	c.disc(0.5, 0.68, 0.07, fill)
	return c.img
}

func heart(size int, fill, _ color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.begin()
	c.moveTo(0.5, 0.9)
	c.cubeTo(0.1, 0.6, 0.02, 0.4, 0.1, 0.25)
	c.cubeTo(0.2, 0.06, 0.45, 0.08, 0.5, 0.28)
	c.cubeTo(0.55, 0.08, 0.8, 0.06, 0.9, 0.25)
	c.cubeTo(0.98, 0.4, 0.9, 0.6, 0.5, 0.9)
	c.z.ClosePath()
	c.fill(fill)
	return c.img
}

func star(size int, fill, _ color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.begin()
	const points = 5
	for i := 0; i < 2*points; i++ {
		r := float32(0.48)
		if i%2 == 1 {
			r = 0.2
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		x := 0.5 + r*float32(math.Cos(a))
		y := 0.53 + r*float32(math.Sin(a))
		if i == 0 {
			c.moveTo(x, y)
		} else {
			c.lineTo(x, y)
		}
	}
	c.z.ClosePath()
	c.fill(fill)
	return c.img
}

func circle(size int, fill, _ color.NRGBA) *image.NRGBA {
	c := newCanvas(size)
	c.face(fill)
	return c.img
}
