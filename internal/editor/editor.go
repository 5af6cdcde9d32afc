// SPDX-License-Identifier: Unlicense OR MIT

/*
Package editor implements the editing session behind the UI.

An Editor owns the Session and the sticker transform. Its methods are
called from the UI event loop. Operations that wait on a platform
capability run in a goroutine and post their completion to Results;
the event loop applies each completion, so all state changes happen on
the loop goroutine. Failures never leave the Editor: they are logged
and turned into Notices.
*/
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stickersmash/stickersmash/internal/asset"
	"github.com/stickersmash/stickersmash/internal/capability"
	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/session"
	"github.com/stickersmash/stickersmash/internal/sticker"
	"github.com/stickersmash/stickersmash/internal/transform"
)

// Texts of the notices shown to the user.
const (
	NoticeNoImage     = "You did not select any image."
	NoticeNoSticker   = "You did not select any sticker."
	NoticePickFailed  = "Could not open the image."
	NoticeSticker     = "Could not load the sticker."
	NoticeSaved       = "Image saved to camera roll!"
	NoticeDownloaded  = "Image downloaded!"
	NoticeSaveFailed  = "Could not save the image."
	defaultNoticeTTL  = 3 * time.Second
	defaultStickerPx  = 256
	resultsBufferSize = 4
)

var errNoExporter = errors.New("editor: no exporter")

func errUnknownSticker(ref string) error {
	return fmt.Errorf("editor: unknown sticker %q", ref)
}

// Config holds the collaborators of an Editor.
type Config struct {
	Platform capability.Platform
	Exporter composite.Exporter
	Renderer composite.Renderer
	Capture  composite.Options
	Bounds   transform.Bounds
	Stickers *sticker.Catalog
	// StickerPx is the edge in pixels built-in stickers are drawn at.
	StickerPx int
	Assets    *asset.Store
	NoticeTTL time.Duration
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

// Editor is the state of the editing screen.
type Editor struct {
	cfg  Config
	log  *slog.Logger
	sess session.Session
	ctrl *transform.Controller

	permission         capability.PermissionState
	permissionLoaded   bool
	permissionAsked    bool
	stickerPickerShown bool
	picking            bool
	exporting          bool

	notices []Notice
	results chan func()
}

// NoticeKind classifies a Notice.
type NoticeKind uint8

const (
	Info NoticeKind = iota
	Success
	Failure
)

// Notice is a message for the user that disappears at Expires.
type Notice struct {
	Kind    NoticeKind
	Text    string
	Expires time.Time
}

// New returns an Editor in the Idle state.
func New(cfg Config) *Editor {
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = defaultNoticeTTL
	}
	if cfg.StickerPx <= 0 {
		cfg.StickerPx = defaultStickerPx
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Assets == nil {
		cfg.Assets = asset.NewStore()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = composite.Raster{}
	}
	return &Editor{
		cfg:     cfg,
		log:     cfg.Logger,
		ctrl:    transform.NewController(cfg.Bounds),
		results: make(chan func(), resultsBufferSize),
	}
}

// Results delivers completions of asynchronous operations. The event
// loop must call each one.
func (e *Editor) Results() <-chan func() {
	return e.results
}

// post hands f to the event loop. It gives up when ctx is done, since
// the loop may have stopped draining Results.
func (e *Editor) post(ctx context.Context, f func()) {
	select {
	case e.results <- f:
	case <-ctx.Done():
	}
}

// Session returns the current session.
func (e *Editor) Session() session.Session {
	return e.sess
}

// Transform returns the current sticker transform.
func (e *Editor) Transform() transform.Transform {
	return e.ctrl.Transform()
}

// Assets returns the images the session refers to.
func (e *Editor) Assets() *asset.Store {
	return e.cfg.Assets
}

// Stickers returns the sticker catalog.
func (e *Editor) Stickers() []sticker.Entry {
	if e.cfg.Stickers == nil {
		return nil
	}
	return e.cfg.Stickers.Entries
}

// Permission returns the last known media library permission.
func (e *Editor) Permission() capability.PermissionState {
	return e.permission
}

// StickerPickerVisible reports whether the sticker picker is open.
func (e *Editor) StickerPickerVisible() bool {
	return e.stickerPickerShown
}

// Busy reports whether a pick or an export is in flight.
func (e *Editor) Busy() bool {
	return e.picking || e.exporting
}

// LoadPermission queries the media library permission once and asks
// for it when the user has not decided yet. The request is made at most
// once per Editor.
func (e *Editor) LoadPermission(ctx context.Context) {
	perms := e.cfg.Platform.Permissions
	if e.permissionLoaded || perms == nil {
		return
	}
	e.permissionLoaded = true
	go func() {
		st := perms.Status(ctx)
		e.post(ctx, func() {
			e.permission = st
			if st == capability.Undetermined {
				e.requestPermission(ctx)
			}
		})
	}()
}

func (e *Editor) requestPermission(ctx context.Context) {
	if e.permissionAsked {
		return
	}
	e.permissionAsked = true
	perms := e.cfg.Platform.Permissions
	go func() {
		st := perms.Request(ctx)
		e.post(ctx, func() {
			e.permission = st
			e.log.Info("media permission", "state", st)
		})
	}()
}

// PickBackground asks the platform picker for a photo. Only one pick
// runs at a time.
func (e *Editor) PickBackground(ctx context.Context) {
	picker := e.cfg.Platform.Picker
	if e.picking || picker == nil {
		return
	}
	e.picking = true
	go func() {
		res, err := picker.PickImage(ctx)
		e.post(ctx, func() {
			e.picking = false
			e.finishPick(res, err)
		})
	}()
}

func (e *Editor) finishPick(res capability.PickResult, err error) {
	switch {
	case err != nil:
		e.log.Error("pick background", "err", err)
		e.notify(Failure, NoticePickFailed)
	case res.Cancelled || res.URI == "" || res.Image == nil:
		e.notify(Info, NoticeNoImage)
	default:
		e.cfg.Assets.Put(res.URI, res.Image)
		e.sess = session.Reduce(e.sess, session.BackgroundPicked{URI: res.URI})
		e.log.Info("background picked", "uri", res.URI)
	}
}

// UsePlaceholder starts editing on the placeholder background.
func (e *Editor) UsePlaceholder() {
	e.sess = session.Reduce(e.sess, session.UsePlaceholder{})
}

// OpenStickerPicker shows the sticker picker.
func (e *Editor) OpenStickerPicker() {
	e.stickerPickerShown = true
}

// CloseStickerPicker hides the sticker picker without a selection.
func (e *Editor) CloseStickerPicker() {
	if !e.stickerPickerShown {
		return
	}
	e.stickerPickerShown = false
	e.notify(Info, NoticeNoSticker)
}

// SelectSticker places the sticker ref at the identity transform and
// closes the sticker picker.
func (e *Editor) SelectSticker(ref string) {
	if _, ok := e.cfg.Assets.Image(ref); !ok {
		if err := e.loadSticker(ref); err != nil {
			e.log.Error("load sticker", "ref", ref, "err", err)
			e.notify(Failure, NoticeSticker)
			return
		}
	}
	e.stickerPickerShown = false
	e.sess = session.Reduce(e.sess, session.StickerSelected{Ref: ref})
	e.ctrl.Reset()
}

func (e *Editor) loadSticker(ref string) error {
	if e.cfg.Stickers == nil {
		return errUnknownSticker(ref)
	}
	entry, ok := e.cfg.Stickers.Lookup(ref)
	if !ok {
		return errUnknownSticker(ref)
	}
	img, err := entry.Image(e.cfg.StickerPx)
	if err != nil {
		return err
	}
	e.cfg.Assets.Put(ref, img)
	return nil
}

// Reset removes the sticker and its transform. The background stays.
func (e *Editor) Reset() {
	e.sess = session.Reduce(e.sess, session.StickerCleared{})
	e.ctrl.Reset()
}

// Drag moves the sticker by (dx, dy) pixels.
func (e *Editor) Drag(dx, dy float32) {
	if e.sess.Sticker == "" {
		return
	}
	e.ctrl.DragDelta(dx, dy)
}

// Pinch scales the sticker by factor.
func (e *Editor) Pinch(factor float32) {
	if e.sess.Sticker == "" {
		return
	}
	e.ctrl.PinchScale(factor)
}

// ExportComposite captures s and hands the result to the platform
// exporter. The save button is not gated on the media permission.
func (e *Editor) ExportComposite(ctx context.Context, s composite.Surface) {
	if e.exporting {
		return
	}
	art, err := composite.Capture(s, e.cfg.Renderer, e.cfg.Capture)
	if err != nil {
		e.log.Error("capture composite", "err", err)
		e.notify(Failure, NoticeSaveFailed)
		return
	}
	exp := e.cfg.Exporter
	if exp == nil {
		e.log.Error("export composite", "err", errNoExporter)
		e.notify(Failure, NoticeSaveFailed)
		return
	}
	e.exporting = true
	go func() {
		res, err := exp.Export(ctx, art)
		e.post(ctx, func() {
			e.exporting = false
			if err != nil {
				e.log.Error("export composite", "err", err, "permission", e.permission)
				e.notify(Failure, NoticeSaveFailed)
				return
			}
			e.log.Info("composite exported", "file", res.Filename, "platform", res.Platform)
			if res.Platform == composite.Browser {
				e.notify(Success, NoticeDownloaded)
			} else {
				e.notify(Success, NoticeSaved)
			}
		})
	}()
}

func (e *Editor) notify(kind NoticeKind, text string) {
	e.notices = append(e.notices, Notice{
		Kind:    kind,
		Text:    text,
		Expires: e.cfg.Clock.Now().Add(e.cfg.NoticeTTL),
	})
}

// Notices returns the notices that have not expired, oldest first.
func (e *Editor) Notices() []Notice {
	now := e.cfg.Clock.Now()
	live := e.notices[:0]
	for _, n := range e.notices {
		if now.Before(n.Expires) {
			live = append(live, n)
		}
	}
	e.notices = live
	return live
}
