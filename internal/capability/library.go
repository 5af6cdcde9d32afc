// SPDX-License-Identifier: Unlicense OR MIT

package capability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Library is a photo library backed by a directory. It is both the
// LibrarySaver and the PermissionManager of native builds: the
// permission is granted when the directory is writable.
type Library struct {
	Dir string
}

// Status reports Undetermined until the directory exists.
func (l *Library) Status(ctx context.Context) PermissionState {
	fi, err := os.Stat(l.Dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Undetermined
	case err != nil || !fi.IsDir():
		return Denied
	}
	if err := probe(l.Dir); err != nil {
		return Denied
	}
	return Granted
}

// Request creates the library directory.
func (l *Library) Request(ctx context.Context) PermissionState {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return Denied
	}
	return l.Status(ctx)
}

// Save copies the file at uri into the library under its base name.
func (l *Library) Save(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := os.Open(uri)
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}
	defer src.Close()
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("library: %w", err)
	}
	dst, err := os.Create(filepath.Join(l.Dir, filepath.Base(uri)))
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("library: save %s: %w", uri, err)
	}
	return dst.Close()
}

func probe(dir string) error {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
