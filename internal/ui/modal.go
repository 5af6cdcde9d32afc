// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"log/slog"
	"path/filepath"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/stickersmash/stickersmash/internal/capability"
	"github.com/stickersmash/stickersmash/internal/sticker"
)

const thumbnailSize = 96

// stickerSheet is the modal listing the sticker catalog.
type stickerSheet struct {
	entries []sticker.Entry
	thumbs  []paint.ImageOp
	clicks  []widget.Clickable
	close   widget.Clickable
	list    layout.List
}

func newStickerSheet(entries []sticker.Entry, log *slog.Logger) *stickerSheet {
	s := &stickerSheet{
		entries: entries,
		thumbs:  make([]paint.ImageOp, len(entries)),
		clicks:  make([]widget.Clickable, len(entries)),
		list:    layout.List{Axis: layout.Horizontal},
	}
	for i, e := range entries {
		img, err := e.Image(thumbnailSize)
		if err != nil {
			log.Warn("sticker thumbnail", "id", e.ID, "err", err)
			continue
		}
		s.thumbs[i] = paint.NewImageOp(img)
	}
	return s
}

func (s *stickerSheet) selected() (string, bool) {
	ref, ok := "", false
	for i := range s.clicks {
		for s.clicks[i].Clicked() {
			ref, ok = s.entries[i].ID, true
		}
	}
	return ref, ok
}

func (s *stickerSheet) closed() bool {
	closed := false
	for s.close.Clicked() {
		closed = true
	}
	return closed
}

func (s *stickerSheet) Layout(gtx C, th *material.Theme, closeIcon *widget.Icon) D {
	return layoutSheet(gtx, s, func(gtx C) D {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx C) D {
						return layout.Inset{Left: unit.Dp(20)}.Layout(gtx, func(gtx C) D {
							lbl := material.Body1(th, "Choose a sticker")
							lbl.Color = foreground
							return lbl.Layout(gtx)
						})
					}),
					layout.Rigid(func(gtx C) D {
						b := material.IconButton(th, &s.close, closeIcon, "Close")
						b.Background = sheet
						b.Color = foreground
						return b.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx C) D {
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx C) D {
					return s.list.Layout(gtx, len(s.entries), s.layoutSticker)
				})
			}),
		)
	})
}

func (s *stickerSheet) layoutSticker(gtx C, i int) D {
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		return material.Clickable(gtx, &s.clicks[i], func(gtx C) D {
			sz := gtx.Dp(unit.Dp(72))
			gtx.Constraints = layout.Exact(gtx.Constraints.Constrain(image.Pt(sz, sz)))
			if s.thumbs[i].Size() == (image.Point{}) {
				return D{Size: gtx.Constraints.Min}
			}
			return widget.Image{Src: s.thumbs[i], Fit: widget.Contain}.Layout(gtx)
		})
	})
}

// layoutSheet draws w in a panel docked to the bottom of a scrim that
// swallows pointer input meant for the screen below.
func layoutSheet(gtx C, tag any, w layout.Widget) D {
	layoutScrim(gtx, tag)
	return layout.S.Layout(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				rr := gtx.Dp(unit.Dp(18))
				sz := gtx.Constraints.Min
				defer clip.RRect{Rect: image.Rectangle{Max: sz}, NE: rr, NW: rr}.Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, sheet)
				return D{Size: sz}
			},
			func(gtx C) D {
				return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(24)}.Layout(gtx, w)
			},
		)
	})
}

func layoutScrim(gtx C, tag any) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, scrim)
	pointer.InputOp{Tag: tag, Types: pointer.Press | pointer.Release | pointer.Scroll}.Add(gtx.Ops)
}

// photoChooser is the modal of a pending native photo pick.
type photoChooser struct {
	req    *capability.Request
	clicks []widget.Clickable
	cancel widget.Clickable
	list   layout.List
}

func newPhotoChooser(req *capability.Request) *photoChooser {
	return &photoChooser{
		req:    req,
		clicks: make([]widget.Clickable, len(req.Files)),
		list:   layout.List{Axis: layout.Vertical},
	}
}

// update answers the request on a click and reports whether it has
// been answered.
func (p *photoChooser) update() bool {
	for i := range p.clicks {
		for p.clicks[i].Clicked() {
			p.req.Choose(p.req.Files[i])
			return true
		}
	}
	for p.cancel.Clicked() {
		p.req.Cancel()
		return true
	}
	return false
}

func (p *photoChooser) Layout(gtx C, th *material.Theme) D {
	return layoutSheet(gtx, p, func(gtx C) D {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		gtx.Constraints.Max.Y = gtx.Constraints.Max.Y * 2 / 3
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				txt := "Choose a photo"
				if len(p.req.Files) == 0 {
					txt = "No photos found"
				}
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, material.Body1(th, txt).Layout)
			}),
			layout.Flexed(1, func(gtx C) D {
				return p.list.Layout(gtx, len(p.req.Files), func(gtx C, i int) D {
					return material.Clickable(gtx, &p.clicks[i], func(gtx C) D {
						gtx.Constraints.Min.X = gtx.Constraints.Max.X
						return layout.Inset{Top: 10, Bottom: 10, Left: 20, Right: 20}.Layout(gtx,
							material.Body2(th, filepath.Base(p.req.Files[i])).Layout)
					})
				})
			}),
			layout.Rigid(func(gtx C) D {
				btn := material.Button(th, &p.cancel, "Cancel")
				btn.Background = background
				btn.Color = foreground
				return layout.UniformInset(unit.Dp(8)).Layout(gtx, btn.Layout)
			}),
		)
	})
}
