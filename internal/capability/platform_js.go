// SPDX-License-Identifier: Unlicense OR MIT

package capability

// NewPlatform returns the browser capabilities. The directories are
// meaningless in a browser and ignored.
func NewPlatform(photoDir, saveDir string) Platform {
	b := new(Browser)
	return Platform{
		Picker:      b,
		Permissions: b,
		Downloader:  b,
	}
}
