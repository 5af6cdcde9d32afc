// SPDX-License-Identifier: Unlicense OR MIT

// Command stickersmash places emoji stickers on a photo and saves the
// result to the photo library, or downloads it when running in a
// browser.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	_ "gioui.org/app/permission/storage"

	"github.com/stickersmash/stickersmash/internal/capability"
	"github.com/stickersmash/stickersmash/internal/composite"
	"github.com/stickersmash/stickersmash/internal/config"
	"github.com/stickersmash/stickersmash/internal/editor"
	"github.com/stickersmash/stickersmash/internal/sticker"
	"github.com/stickersmash/stickersmash/internal/ui"
)

type App struct {
	w   *app.Window
	ed  *editor.Editor
	ui  *ui.UI
	log *slog.Logger
	// cancel stops the capability calls still in flight when the
	// loop exits.
	cancel context.CancelFunc

	// requests is nil when the platform picks photos outside the app.
	requests <-chan *capability.Request
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger(os.Stderr)

	go func() {
		w := app.NewWindow(
			app.Size(unit.Dp(400), unit.Dp(800)),
			app.Title("StickerSmash"),
		)
		a, err := newApp(w, cfg, logger)
		if err != nil {
			log.Fatal(err)
		}
		if err := a.run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func newApp(w *app.Window, cfg *config.Config, logger *slog.Logger) (*App, error) {
	caps := capability.NewPlatform(cfg.PhotoDir, cfg.SaveDir)
	exp, err := composite.NewExporter(composite.DefaultPlatform, caps)
	if err != nil {
		return nil, err
	}
	stickers, err := sticker.Default()
	if err != nil {
		return nil, err
	}
	if cfg.StickerDir != "" {
		if err := stickers.AddDir(cfg.StickerDir); err != nil {
			return nil, err
		}
	}
	ed := editor.New(editor.Config{
		Platform:  caps,
		Exporter:  exp,
		Renderer:  cfg.NewRenderer(),
		Capture:   cfg.CaptureOptions(),
		Bounds:    cfg.Bounds(),
		Stickers:  stickers,
		NoticeTTL: cfg.NoticeTTL,
		Logger:    logger,
	})
	a := &App{w: w, ed: ed, log: logger}
	if caps.Chooser != nil {
		a.requests = caps.Chooser.Requests()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.ui, err = ui.New(ctx, ed, unit.Dp(cfg.StickerSize), logger)
	if err != nil {
		cancel()
		return nil, err
	}
	ed.LoadPermission(ctx)
	return a, nil
}

func (a *App) run() error {
	defer a.cancel()
	a.log.Info("window opened", "platform", composite.DefaultPlatform)
	var ops op.Ops
	for {
		select {
		case done := <-a.ed.Results():
			done()
			a.w.Invalidate()
		case req := <-a.requests:
			a.ui.ShowChooser(req)
			a.w.Invalidate()
		case e := <-a.w.Events():
			switch e := e.(type) {
			case key.Event:
				if e.Name == key.NameEscape && e.State == key.Press && a.ed.StickerPickerVisible() {
					a.ed.CloseStickerPicker()
					a.w.Invalidate()
				}
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				a.ui.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}
