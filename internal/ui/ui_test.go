// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"context"
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/io/router"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickersmash/stickersmash/internal/capability"
	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/editor"
	"github.com/stickersmash/stickersmash/internal/sticker"
	"github.com/stickersmash/stickersmash/internal/transform"
)

func newEditor(t testing.TB) (*editor.Editor, *sticker.Catalog) {
	cat, err := sticker.Default()
	require.NoError(t, err)
	return editor.New(editor.Config{Stickers: cat, StickerPx: 32}), cat
}

func newContext(ops *op.Ops, q *router.Router, size image.Point) layout.Context {
	return layout.Context{
		Ops:         ops,
		Constraints: layout.Constraints{Max: size},
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Queue:       q,
	}
}

func TestCanvasAttachesOnLayout(t *testing.T) {
	ed, cat := newEditor(t)
	c := &Canvas{StickerSize: 40}
	_, ok := c.Scene()
	assert.False(t, ok)
	_, err := composite.Capture(c, composite.Raster{}, composite.Options{})
	assert.ErrorIs(t, err, composite.ErrNotAttached)

	ed.UsePlaceholder()
	ed.SelectSticker(cat.Entries[0].ID)
	var ops op.Ops
	var r router.Router
	c.Layout(newContext(&ops, &r, image.Pt(800, 600)), ed)

	sc, ok := c.Scene()
	require.True(t, ok)
	assert.Equal(t, image.Pt(320, 440), sc.Size)
	assert.NotNil(t, sc.Background.Src)
	assert.NotNil(t, sc.Sticker.Src)
	assert.Equal(t, image.Rect(140, 88, 180, 128), sc.StickerBox)

	a, err := composite.Capture(c, composite.Raster{}, composite.Options{Height: 44})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 44), a.Image.Bounds().Size())
}

func TestCanvasDragsSticker(t *testing.T) {
	ed, cat := newEditor(t)
	ed.UsePlaceholder()
	ed.SelectSticker(cat.Entries[0].ID)

	c := &Canvas{StickerSize: 40}
	var ops op.Ops
	var r router.Router
	gtx := newContext(&ops, &r, image.Pt(320, 440))
	c.Layout(gtx, ed)
	r.Frame(&ops)
	r.Queue(
		pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(160, 108)},
		pointer.Event{Type: pointer.Drag, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(170, 118)},
		pointer.Event{Type: pointer.Release, Source: pointer.Mouse, Position: f32.Pt(170, 118)},
	)
	ops.Reset()
	c.Layout(gtx, ed)

	assert.Equal(t, transform.Transform{X: 10, Y: 10, Scale: 1}, ed.Transform())
	sc, _ := c.Scene()
	assert.Equal(t, image.Rect(150, 98, 190, 138), sc.StickerBounds())
}

func TestCanvasPinchWithSecondFingerOutsideSticker(t *testing.T) {
	ed, cat := newEditor(t)
	ed.UsePlaceholder()
	ed.SelectSticker(cat.Entries[0].ID)

	c := &Canvas{StickerSize: 40}
	var ops op.Ops
	var r router.Router
	gtx := newContext(&ops, &r, image.Pt(320, 440))
	frame := func() {
		ops.Reset()
		c.Layout(gtx, ed)
		r.Frame(&ops)
	}
	touch := func(typ pointer.Type, id pointer.ID, x, y float32) pointer.Event {
		return pointer.Event{Type: typ, Source: pointer.Touch, PointerID: id, Position: f32.Pt(x, y)}
	}

	frame()
	r.Queue(touch(pointer.Press, 1, 160, 108))
	frame()
	require.True(t, c.gesture.Active())

	// The sticker box ends at x=180.
	r.Queue(
		touch(pointer.Press, 2, 200, 108),
		touch(pointer.Drag, 2, 240, 108),
	)
	frame()

	tr := ed.Transform()
	assert.InDelta(t, 2, tr.Scale, 1e-4)
	assert.InDelta(t, 20, tr.X, 1e-4)
	assert.InDelta(t, 0, tr.Y, 1e-4)
}

func TestCanvasIgnoresPointerWithoutSticker(t *testing.T) {
	ed, _ := newEditor(t)
	ed.UsePlaceholder()

	c := &Canvas{StickerSize: 40}
	var ops op.Ops
	var r router.Router
	gtx := newContext(&ops, &r, image.Pt(320, 440))
	c.Layout(gtx, ed)
	r.Frame(&ops)
	r.Queue(
		pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(160, 108)},
		pointer.Event{Type: pointer.Drag, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(200, 200)},
	)
	ops.Reset()
	c.Layout(gtx, ed)
	assert.Equal(t, transform.Identity, ed.Transform())
}

func TestShowChooserCancelsPrevious(t *testing.T) {
	ed, _ := newEditor(t)
	u, err := New(context.Background(), ed, 40, nil)
	require.NoError(t, err)

	ch := capability.NewChooser(t.TempDir())
	first := make(chan capability.PickResult, 1)
	go func() {
		res, _ := ch.PickImage(context.Background())
		first <- res
	}()
	u.ShowChooser(<-ch.Requests())
	assert.True(t, u.ChooserVisible())

	go ch.PickImage(context.Background())
	u.ShowChooser(<-ch.Requests())
	assert.True(t, (<-first).Cancelled)
	u.chooser.req.Cancel()
}

func TestLayoutStates(t *testing.T) {
	ed, cat := newEditor(t)
	u, err := New(context.Background(), ed, 40, nil)
	require.NoError(t, err)
	var ops op.Ops
	var r router.Router
	frame := func() {
		ops.Reset()
		dims := u.Layout(newContext(&ops, &r, image.Pt(400, 800)))
		assert.Equal(t, 800, dims.Size.Y)
		r.Frame(&ops)
	}

	frame()
	ed.UsePlaceholder()
	frame()
	ed.OpenStickerPicker()
	frame()
	ed.SelectSticker(cat.Entries[1].ID)
	ed.CloseStickerPicker()
	ed.OpenStickerPicker()
	ed.CloseStickerPicker()
	require.NotEmpty(t, ed.Notices())
	frame()

	sc, ok := u.Canvas().Scene()
	require.True(t, ok)
	assert.NotNil(t, sc.Sticker.Src)
}

func BenchmarkUI(b *testing.B) {
	ed, cat := newEditor(b)
	ed.UsePlaceholder()
	ed.SelectSticker(cat.Entries[0].ID)
	u, err := New(context.Background(), ed, 40, nil)
	if err != nil {
		b.Fatal(err)
	}
	var ops op.Ops
	var r router.Router
	for i := 0; i < b.N; i++ {
		ops.Reset()
		u.Layout(newContext(&ops, &r, image.Pt(800, 600)))
	}
}
