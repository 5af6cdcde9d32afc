// SPDX-License-Identifier: Unlicense OR MIT

// Package ui lays out the StickerSmash screen with Gio widgets.
package ui

import (
	"context"
	"image"
	"image/color"
	"log/slog"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/stickersmash/stickersmash/internal/capability"
	"github.com/stickersmash/stickersmash/internal/editor"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	background = rgb(0x25292e)
	foreground = rgb(0xffffff)
	accent     = rgb(0xffd33d)
	sheet      = rgb(0x464c55)
	scrim      = argb(0x99000000)

	noticeColors = map[editor.NoticeKind]color.NRGBA{
		editor.Info:    rgb(0x464c55),
		editor.Success: rgb(0x2e7d32),
		editor.Failure: rgb(0xc62828),
	}
)

// UI is the editing screen of an Editor.
type UI struct {
	ctx context.Context
	ed  *editor.Editor
	log *slog.Logger
	th  *material.Theme

	canvas Canvas

	choose, usePhoto        widget.Clickable
	reset, addSticker, save widget.Clickable
	resetIcon, addIcon      *widget.Icon
	saveIcon, closeIcon     *widget.Icon

	stickers *stickerSheet
	chooser  *photoChooser
}

// New returns the screen of ed. Asynchronous editor operations started
// by the screen run under ctx.
func New(ctx context.Context, ed *editor.Editor, stickerSize unit.Dp, log *slog.Logger) (*UI, error) {
	if log == nil {
		log = slog.Default()
	}
	u := &UI{
		ctx:    ctx,
		ed:     ed,
		log:    log,
		th:     material.NewTheme(gofont.Collection()),
		canvas: Canvas{StickerSize: stickerSize},
	}
	u.th.Palette.Bg = background
	u.th.Palette.Fg = foreground
	u.th.Palette.ContrastBg = foreground
	u.th.Palette.ContrastFg = background

	for _, ic := range []struct {
		dst  **widget.Icon
		data []byte
	}{
		{&u.resetIcon, icons.NavigationRefresh},
		{&u.addIcon, icons.ContentAdd},
		{&u.saveIcon, icons.FileFileDownload},
		{&u.closeIcon, icons.NavigationClose},
	} {
		icon, err := widget.NewIcon(ic.data)
		if err != nil {
			return nil, err
		}
		*ic.dst = icon
	}
	u.stickers = newStickerSheet(ed.Stickers(), log)
	return u, nil
}

// Canvas returns the surface captured on export.
func (u *UI) Canvas() *Canvas {
	return &u.canvas
}

// ShowChooser presents the photo choices of req until the user picks
// one or cancels.
func (u *UI) ShowChooser(req *capability.Request) {
	if u.chooser != nil {
		u.chooser.req.Cancel()
	}
	u.chooser = newPhotoChooser(req)
}

// ChooserVisible reports whether a photo chooser is shown.
func (u *UI) ChooserVisible() bool {
	return u.chooser != nil
}

func (u *UI) update() {
	for u.choose.Clicked() {
		u.ed.PickBackground(u.ctx)
	}
	for u.usePhoto.Clicked() {
		u.ed.UsePlaceholder()
	}
	for u.reset.Clicked() {
		u.ed.Reset()
	}
	for u.addSticker.Clicked() {
		u.ed.OpenStickerPicker()
	}
	for u.save.Clicked() {
		u.ed.ExportComposite(u.ctx, &u.canvas)
	}
	if ref, ok := u.stickers.selected(); ok {
		u.ed.SelectSticker(ref)
	}
	if u.stickers.closed() {
		u.ed.CloseStickerPicker()
	}
	if u.chooser != nil && u.chooser.update() {
		u.chooser = nil
	}
}

// Layout draws the screen.
func (u *UI) Layout(gtx C) D {
	u.update()
	paint.Fill(gtx.Ops, background)
	dims := layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Center.Layout(gtx, func(gtx C) D {
				return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx C) D {
					return u.canvas.Layout(gtx, u.ed)
				})
			})
		}),
		layout.Rigid(func(gtx C) D {
			return layout.Inset{Bottom: unit.Dp(32)}.Layout(gtx, func(gtx C) D {
				if u.ed.Session().EditingActive {
					return u.layoutOptions(gtx)
				}
				return u.layoutFooter(gtx)
			})
		}),
	)
	if u.ed.StickerPickerVisible() {
		u.stickers.Layout(gtx, u.th, u.closeIcon)
	}
	if u.chooser != nil {
		u.chooser.Layout(gtx, u.th)
	}
	u.layoutNotices(gtx)
	return dims
}

func (u *UI) layoutFooter(gtx C) D {
	return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			btn := material.Button(u.th, &u.choose, "Choose a photo")
			btn.Background = foreground
			btn.Color = background
			btn.CornerRadius = unit.Dp(18)
			btn.Inset = layout.Inset{Top: 14, Bottom: 14, Left: 48, Right: 48}
			return btn.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx C) D {
			btn := material.Button(u.th, &u.usePhoto, "Use this photo")
			btn.Background = color.NRGBA{}
			btn.Color = foreground
			return btn.Layout(gtx)
		}),
	)
}

func (u *UI) layoutOptions(gtx C) D {
	option := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			b := material.IconButton(u.th, btn, icon, desc)
			b.Background = color.NRGBA{}
			b.Color = foreground
			return b.Layout(gtx)
		})
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		option(&u.reset, u.resetIcon, "Reset"),
		layout.Rigid(layout.Spacer{Width: unit.Dp(48)}.Layout),
		layout.Rigid(func(gtx C) D {
			b := material.IconButton(u.th, &u.addSticker, u.addIcon, "Add sticker")
			b.Background = foreground
			b.Color = background
			b.Size = unit.Dp(38)
			b.Inset = layout.UniformInset(unit.Dp(20))
			return widget.Border{
				Color:        accent,
				CornerRadius: unit.Dp(42),
				Width:        unit.Dp(4),
			}.Layout(gtx, b.Layout)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(48)}.Layout),
		option(&u.save, u.saveIcon, "Save"),
	)
}

func (u *UI) layoutNotices(gtx C) {
	notices := u.ed.Notices()
	if len(notices) == 0 {
		return
	}
	n := notices[len(notices)-1]
	op.InvalidateOp{At: notices[0].Expires}.Add(gtx.Ops)
	layout.N.Layout(gtx, func(gtx C) D {
		return layout.Inset{Top: unit.Dp(24)}.Layout(gtx, func(gtx C) D {
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					rr := gtx.Dp(unit.Dp(8))
					defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Push(gtx.Ops).Pop()
					paint.Fill(gtx.Ops, noticeColors[n.Kind])
					return D{Size: gtx.Constraints.Min}
				},
				func(gtx C) D {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx C) D {
						lbl := material.Body1(u.th, n.Text)
						lbl.Color = foreground
						return lbl.Layout(gtx)
					})
				},
			)
		})
	})
}

func rgb(c uint32) color.NRGBA {
	return argb(0xff000000 | c)
}

func argb(c uint32) color.NRGBA {
	return color.NRGBA{A: uint8(c >> 24), R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
}
