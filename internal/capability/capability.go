// SPDX-License-Identifier: Unlicense OR MIT

/*
Package capability defines the platform services the editor relies on
but does not implement: picking photos, media permissions, saving to the
photo library and browser downloads.

Each platform provides a Platform at startup. Native builds save into a
library directory and pick photos through an in-app Chooser; js builds
use the browser file input and download affordances.
*/
package capability

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	// Decoders for picked photos.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// PickResult is the outcome of an image pick. A cancelled pick carries
// no URI.
type PickResult struct {
	URI       string
	Image     image.Image
	Cancelled bool
}

// ImagePicker lets the user pick a photo.
type ImagePicker interface {
	PickImage(ctx context.Context) (PickResult, error)
}

// PermissionState is the media library permission.
type PermissionState uint8

const (
	// Undetermined means the user has not been asked yet.
	Undetermined PermissionState = iota
	Granted
	Denied
)

// PermissionManager reports and requests media library access.
type PermissionManager interface {
	Status(ctx context.Context) PermissionState
	Request(ctx context.Context) PermissionState
}

// LibrarySaver stores a local image file in the photo library.
type LibrarySaver interface {
	Save(ctx context.Context, uri string) error
}

// Downloader hands a data URI to the browser as a file download.
type Downloader interface {
	Download(ctx context.Context, dataURI, filename string) error
}

// Platform bundles the capabilities available on the running platform.
// Saver and Downloader are mutually exclusive; Chooser is set when
// picking happens inside the app.
type Platform struct {
	Picker      ImagePicker
	Permissions PermissionManager
	Saver       LibrarySaver
	Downloader  Downloader
	Chooser     *Chooser
}

// Decode decodes a PNG, JPEG, GIF or WebP image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("capability: decode image: %w", err)
	}
	return img, nil
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capability: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (p PermissionState) String() string {
	switch p {
	case Undetermined:
		return "undetermined"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		panic("invalid PermissionState")
	}
}
