// SPDX-License-Identifier: Unlicense OR MIT

package capability

import (
	"bytes"
	"context"
	"errors"
	"syscall/js"
)

// Browser provides the capabilities of a web page. Browsers need no
// media permission; saving is a download.
type Browser struct{}

var errNoDocument = errors.New("capability: no document")

func (*Browser) Status(ctx context.Context) PermissionState  { return Granted }
func (*Browser) Request(ctx context.Context) PermissionState { return Granted }

// Download clicks a temporary anchor pointing at dataURI.
func (*Browser) Download(ctx context.Context, dataURI, filename string) error {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return errNoDocument
	}
	a := doc.Call("createElement", "a")
	a.Set("href", dataURI)
	a.Set("download", filename)
	a.Get("style").Set("display", "none")
	body := doc.Get("body")
	body.Call("appendChild", a)
	a.Call("click")
	body.Call("removeChild", a)
	return nil
}

type fileOutcome struct {
	name      string
	data      []byte
	cancelled bool
	err       error
}

// PickImage opens the browser file dialog and decodes the chosen file.
func (*Browser) PickImage(ctx context.Context) (PickResult, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return PickResult{}, errNoDocument
	}
	input := doc.Call("createElement", "input")
	input.Set("type", "file")
	input.Set("accept", "image/*")

	done := make(chan fileOutcome, 1)
	finish := func(o fileOutcome) {
		select {
		case done <- o:
		default:
		}
	}
	var funcs []js.Func
	listen := func(target js.Value, name string, f func()) {
		fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			f()
			return nil
		})
		funcs = append(funcs, fn)
		target.Call("addEventListener", name, fn)
	}
	defer func() {
		for _, fn := range funcs {
			fn.Release()
		}
	}()

	listen(input, "cancel", func() {
		finish(fileOutcome{cancelled: true})
	})
	listen(input, "change", func() {
		files := input.Get("files")
		if files.Length() == 0 {
			finish(fileOutcome{cancelled: true})
			return
		}
		file := files.Index(0)
		name := file.Get("name").String()
		reader := js.Global().Get("FileReader").New()
		listen(reader, "load", func() {
			buf := js.Global().Get("Uint8Array").New(reader.Get("result"))
			data := make([]byte, buf.Get("length").Int())
			js.CopyBytesToGo(data, buf)
			finish(fileOutcome{name: name, data: data})
		})
		listen(reader, "error", func() {
			finish(fileOutcome{err: errors.New("capability: read " + name)})
		})
		reader.Call("readAsArrayBuffer", file)
	})
	input.Call("click")

	var o fileOutcome
	select {
	case o = <-done:
	case <-ctx.Done():
		return PickResult{}, ctx.Err()
	}
	switch {
	case o.err != nil:
		return PickResult{}, o.err
	case o.cancelled:
		return PickResult{Cancelled: true}, nil
	}
	img, err := Decode(bytes.NewReader(o.data))
	if err != nil {
		return PickResult{}, err
	}
	return PickResult{URI: o.name, Image: img}, nil
}
