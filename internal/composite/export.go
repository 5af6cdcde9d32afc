// SPDX-License-Identifier: Unlicense OR MIT

package composite

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stickersmash/stickersmash/internal/capability"
)

// Platform selects how artifacts leave the app.
type Platform uint8

const (
	// Native platforms write a temporary file and save it to the
	// photo library.
	Native Platform = iota
	// Browser platforms download a data URI.
	Browser
)

// Exporter delivers an artifact to the platform.
type Exporter interface {
	Export(ctx context.Context, a *Artifact) (Result, error)
}

// Result describes a delivered artifact.
type Result struct {
	Platform Platform
	// Filename the artifact was delivered under.
	Filename string
}

// NativeExporter encodes artifacts to a temporary file and hands the
// file to a LibrarySaver. The file is removed afterwards.
type NativeExporter struct {
	Saver capability.LibrarySaver
	// TempDir holds the temporary files. Empty means os.TempDir.
	TempDir string
}

// BrowserExporter encodes artifacts as data URIs and downloads them.
type BrowserExporter struct {
	Downloader capability.Downloader
}

// NewExporter returns the exporter of platform p.
func NewExporter(p Platform, caps capability.Platform) (Exporter, error) {
	switch p {
	case Native:
		if caps.Saver == nil {
			return nil, errors.New("composite: native export needs a library saver")
		}
		return &NativeExporter{Saver: caps.Saver}, nil
	case Browser:
		if caps.Downloader == nil {
			return nil, errors.New("composite: browser export needs a downloader")
		}
		return &BrowserExporter{Downloader: caps.Downloader}, nil
	}
	return nil, fmt.Errorf("composite: unknown platform %d", p)
}

// Export implements Exporter.
func (e *NativeExporter) Export(ctx context.Context, a *Artifact) (Result, error) {
	dir, err := os.MkdirTemp(e.TempDir, "stickersmash-")
	if err != nil {
		return Result{}, fmt.Errorf("composite: %w", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, a.Filename())
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("composite: %w", err)
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return Result{}, err
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("composite: %w", err)
	}
	if err := e.Saver.Save(ctx, path); err != nil {
		return Result{}, fmt.Errorf("composite: save: %w", err)
	}
	return Result{Platform: Native, Filename: a.Filename()}, nil
}

// Export implements Exporter.
func (e *BrowserExporter) Export(ctx context.Context, a *Artifact) (Result, error) {
	uri, err := DataURI(a)
	if err != nil {
		return Result{}, err
	}
	if err := e.Downloader.Download(ctx, uri, a.Filename()); err != nil {
		return Result{}, fmt.Errorf("composite: download: %w", err)
	}
	return Result{Platform: Browser, Filename: a.Filename()}, nil
}

// DataURI encodes a as a base64 data URI.
func DataURI(a *Artifact) (string, error) {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return "", err
	}
	return "data:" + a.Format.MIME() + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (p Platform) String() string {
	switch p {
	case Native:
		return "native"
	case Browser:
		return "browser"
	default:
		panic("invalid Platform")
	}
}
