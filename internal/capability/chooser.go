// SPDX-License-Identifier: Unlicense OR MIT

package capability

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Chooser is an ImagePicker for platforms without a system photo
// picker. PickImage publishes a Request that the UI presents and
// answers.
type Chooser struct {
	// Dir is the directory listed by the chooser.
	Dir string

	requests chan *Request
}

// Request is a pending pick waiting for the user.
type Request struct {
	// Files are the image paths the user can choose from.
	Files []string

	once  sync.Once
	reply chan string
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// NewChooser returns a Chooser over dir.
func NewChooser(dir string) *Chooser {
	return &Chooser{Dir: dir, requests: make(chan *Request)}
}

// Requests delivers picks waiting for the user.
func (c *Chooser) Requests() <-chan *Request {
	return c.requests
}

// PickImage lists the images in Dir and waits for the user to choose one.
func (c *Chooser) PickImage(ctx context.Context) (PickResult, error) {
	files, err := c.list()
	if err != nil {
		return PickResult{}, err
	}
	req := &Request{Files: files, reply: make(chan string, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return PickResult{}, ctx.Err()
	}
	var path string
	select {
	case path = <-req.reply:
	case <-ctx.Done():
		return PickResult{}, ctx.Err()
	}
	if path == "" {
		return PickResult{Cancelled: true}, nil
	}
	img, err := DecodeFile(path)
	if err != nil {
		return PickResult{}, err
	}
	return PickResult{URI: path, Image: img}, nil
}

func (c *Chooser) list() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("capability: list photos: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(c.Dir, e.Name()))
	}
	return files, nil
}

// Choose answers the request with one of its Files. Only the first
// answer counts.
func (r *Request) Choose(path string) {
	r.answer(path)
}

// Cancel answers the request with no selection.
func (r *Request) Cancel() {
	r.answer("")
}

func (r *Request) answer(path string) {
	r.once.Do(func() {
		r.reply <- path
	})
}
