// SPDX-License-Identifier: Unlicense OR MIT

/*
Package transform tracks the placement of the sticker overlay.

A Transform is a translation in pixels plus a uniform scale factor.
The scale is kept inside the Bounds of the Controller that owns it.
*/
package transform

import (
	"math"

	"gioui.org/f32"
	"golang.org/x/exp/constraints"
)

// Transform is the placement of a sticker relative to its resting
// position on the canvas.
type Transform struct {
	X, Y  float32
	Scale float32
}

// Identity is the transform of a freshly placed sticker.
var Identity = Transform{Scale: 1}

// Bounds limits the scale of a Transform.
type Bounds struct {
	Min, Max float32
}

// DefaultBounds keeps the sticker visible without letting it swallow
// the canvas.
var DefaultBounds = Bounds{Min: 0.5, Max: 3}

// Valid reports whether b can hold the identity scale.
func (b Bounds) Valid() bool {
	return b.Min > 0 && b.Min <= 1 && b.Max >= 1 && !isInf(b.Max)
}

// Clamp limits s to b.
func (b Bounds) Clamp(s float32) float32 {
	return clamp(s, b.Min, b.Max)
}

// Translate returns t moved by (dx, dy). Translation is unbounded.
func (t Transform) Translate(dx, dy float32) Transform {
	if !finite(dx) || !finite(dy) {
		return t
	}
	t.X += dx
	t.Y += dy
	return t
}

// Zoom returns t with its scale multiplied by factor and clamped to b.
// Non-finite factors leave t unchanged.
func (t Transform) Zoom(factor float32, b Bounds) Transform {
	if !finite(factor) {
		return t
	}
	t.Scale = b.Clamp(t.Scale * factor)
	return t
}

// Affine returns the transformation that maps sticker coordinates to
// canvas coordinates, scaling around origin before translating.
func (t Transform) Affine(origin f32.Point) f32.Affine2D {
	return f32.Affine2D{}.
		Scale(origin, f32.Pt(t.Scale, t.Scale)).
		Offset(f32.Pt(t.X, t.Y))
}

// Controller owns the Transform of the single placed sticker.
type Controller struct {
	bounds Bounds
	t      Transform
}

// NewController returns a Controller at Identity. Invalid bounds are
// replaced by DefaultBounds.
func NewController(b Bounds) *Controller {
	if !b.Valid() {
		b = DefaultBounds
	}
	return &Controller{bounds: b, t: Identity}
}

// DragDelta moves the sticker by (dx, dy).
func (c *Controller) DragDelta(dx, dy float32) {
	c.t = c.t.Translate(dx, dy)
}

// PinchScale multiplies the sticker scale by factor.
func (c *Controller) PinchScale(factor float32) {
	c.t = c.t.Zoom(factor, c.bounds)
}

// Reset returns the sticker to Identity.
func (c *Controller) Reset() {
	c.t = Identity
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform {
	return c.t
}

// Bounds returns the scale limits of c.
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

func clamp[T constraints.Float](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isInf(v float32) bool {
	return math.IsInf(float64(v), 0)
}
