// SPDX-License-Identifier: Unlicense OR MIT

/*
Package composite flattens the editing canvas into a single image.

A Scene describes what the canvas shows: a background covering the
canvas and an optional sticker placed by a transform. Scene.Paint draws
it with Gio operations for the screen and the Headless renderer; the
Raster renderer draws the same geometry in software. Capture renders
the scene of a Surface into an Artifact that an Exporter hands to the
platform.
*/
package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/google/uuid"

	"github.com/stickersmash/stickersmash/internal/transform"
)

// DefaultHeight is the height in pixels of a captured image when
// Options leave it unset.
const DefaultHeight = 440

// JPEGMatte fills the transparent rounded corners of JPEG artifacts,
// which have no alpha channel. It is the app background.
var JPEGMatte = color.NRGBA{R: 0x25, G: 0x29, B: 0x2e, A: 0xff}

// Image is a scene image. Op caches the paint operation of Src; when
// it is the zero value Paint creates one.
type Image struct {
	Src image.Image
	Op  paint.ImageOp
}

// Scene is a snapshot of the canvas in surface pixels.
type Scene struct {
	// Size of the surface.
	Size image.Point
	// Radius of the rounded surface corners.
	Radius     int
	Background Image
	// Sticker is optional. At the identity transform it fills
	// StickerBox.
	Sticker    Image
	StickerBox image.Rectangle
	Transform  transform.Transform
}

// Surface is a canvas that can be captured. Scene reports false until
// the surface has been laid out.
type Surface interface {
	Scene() (Scene, bool)
}

// Renderer draws a scene scaled to size.
type Renderer interface {
	Render(sc Scene, size image.Point) (*image.RGBA, error)
}

// Format of an encoded artifact.
type Format uint8

const (
	PNG Format = iota
	JPEG
)

// Options control a capture.
type Options struct {
	// Width and Height of the artifact. A zero Width follows the
	// surface aspect ratio; a zero Height is DefaultHeight unless
	// Width is set.
	Width, Height int
	// Quality from 0 to 1 of lossy formats.
	Quality float32
	Format  Format
}

// Artifact is a flattened capture of a surface.
type Artifact struct {
	ID      uuid.UUID
	Image   *image.RGBA
	Format  Format
	Quality float32
}

// CaptureError is returned when a surface cannot be captured.
type CaptureError struct {
	Op  string
	Err error
}

// ErrNotAttached is wrapped by a CaptureError for surfaces that were
// never laid out.
var ErrNotAttached = errors.New("surface not attached")

// Capture renders the scene of target with r.
func Capture(target Surface, r Renderer, opts Options) (*Artifact, error) {
	if target == nil {
		return nil, &CaptureError{Op: "capture", Err: ErrNotAttached}
	}
	sc, ok := target.Scene()
	if !ok || sc.Size.X <= 0 || sc.Size.Y <= 0 {
		return nil, &CaptureError{Op: "capture", Err: ErrNotAttached}
	}
	img, err := r.Render(sc, opts.size(sc.Size))
	if err != nil {
		return nil, &CaptureError{Op: "render", Err: err}
	}
	return &Artifact{
		ID:      uuid.New(),
		Image:   img,
		Format:  opts.Format,
		Quality: opts.Quality,
	}, nil
}

func (o Options) size(surface image.Point) image.Point {
	w, h := o.Width, o.Height
	switch {
	case w > 0 && h > 0:
	case w > 0:
		h = int(math.Round(float64(w) * float64(surface.Y) / float64(surface.X)))
	default:
		if h <= 0 {
			h = DefaultHeight
		}
		w = int(math.Round(float64(h) * float64(surface.X) / float64(surface.Y)))
	}
	return image.Pt(max(w, 1), max(h, 1))
}

// Encode writes the artifact in its format.
func (a *Artifact) Encode(w io.Writer) error {
	var err error
	switch a.Format {
	case JPEG:
		err = jpeg.Encode(w, flatten(a.Image, JPEGMatte), &jpeg.Options{Quality: jpegQuality(a.Quality)})
	default:
		err = png.Encode(w, a.Image)
	}
	if err != nil {
		return fmt.Errorf("composite: encode: %w", err)
	}
	return nil
}

// Filename is the name the artifact is saved or downloaded under.
func (a *Artifact) Filename() string {
	return "stickersmash-" + a.ID.String() + a.Format.Ext()
}

// flatten composes img over an opaque background c.
func flatten(img *image.RGBA, c color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(c), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func jpegQuality(q float32) int {
	if q <= 0 || q > 1 {
		q = 1
	}
	return max(1, int(math.Round(float64(q)*100)))
}

// Ext returns the file extension of f.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return ".png"
}

// MIME returns the media type of f.
func (f Format) MIME() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ParseFormat parses "png" or "jpeg".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return PNG, fmt.Errorf("composite: unknown format %q", s)
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Paint draws the scene in surface pixels.
func (sc Scene) Paint(ops *op.Ops) {
	defer clip.UniformRRect(image.Rectangle{Max: sc.Size}, sc.Radius).Push(ops).Pop()
	if bg := sc.Background; bg.Src != nil {
		paintImage(ops, bg.paintOp(), sc.backgroundAffine())
	}
	if st := sc.Sticker; st.Src != nil && !sc.StickerBox.Empty() {
		paintImage(ops, st.paintOp(), sc.stickerAffine())
	}
}

// StickerBounds returns the surface area covered by the transformed
// sticker, or the empty rectangle when the scene has none.
func (sc Scene) StickerBounds() image.Rectangle {
	if sc.Sticker.Src == nil || sc.StickerBox.Empty() {
		return image.Rectangle{}
	}
	box := sc.StickerBox
	center := f32.Pt(float32(box.Min.X+box.Max.X)/2, float32(box.Min.Y+box.Max.Y)/2)
	aff := sc.Transform.Affine(center)
	p0 := aff.Transform(f32.Pt(float32(box.Min.X), float32(box.Min.Y)))
	p1 := aff.Transform(f32.Pt(float32(box.Max.X), float32(box.Max.Y)))
	return image.Rect(
		int(math.Floor(float64(p0.X))), int(math.Floor(float64(p0.Y))),
		int(math.Ceil(float64(p1.X))), int(math.Ceil(float64(p1.Y))),
	)
}

func paintImage(ops *op.Ops, img paint.ImageOp, aff f32.Affine2D) {
	defer op.Affine(aff).Push(ops).Pop()
	defer clip.Rect(image.Rectangle{Max: img.Size()}).Push(ops).Pop()
	img.Add(ops)
	paint.PaintOp{}.Add(ops)
}

func (im Image) paintOp() paint.ImageOp {
	if im.Op.Size() == (image.Point{}) {
		return paint.NewImageOp(im.Src)
	}
	return im.Op
}

// backgroundAffine maps background pixels, origin at zero, onto the
// surface so that the image covers it and stays centered.
func (sc Scene) backgroundAffine() f32.Affine2D {
	isz := sc.Background.Src.Bounds().Size()
	if isz.X == 0 || isz.Y == 0 {
		return f32.Affine2D{}
	}
	s := float32(math.Max(
		float64(sc.Size.X)/float64(isz.X),
		float64(sc.Size.Y)/float64(isz.Y),
	))
	off := f32.Pt(
		(float32(sc.Size.X)-float32(isz.X)*s)/2,
		(float32(sc.Size.Y)-float32(isz.Y)*s)/2,
	)
	return f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(s, s)).Offset(off)
}

// stickerAffine maps sticker pixels, origin at zero, into StickerBox
// and then applies the sticker transform around the box center.
func (sc Scene) stickerAffine() f32.Affine2D {
	isz := sc.Sticker.Src.Bounds().Size()
	if isz.X == 0 || isz.Y == 0 {
		return f32.Affine2D{}
	}
	box := sc.StickerBox
	fit := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(box.Dx())/float32(isz.X), float32(box.Dy())/float32(isz.Y))).
		Offset(f32.Pt(float32(box.Min.X), float32(box.Min.Y)))
	center := f32.Pt(float32(box.Min.X+box.Max.X)/2, float32(box.Min.Y+box.Max.Y)/2)
	return sc.Transform.Affine(center).Mul(fit)
}
