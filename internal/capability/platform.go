// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js
// +build !js

package capability

// NewPlatform returns the native capabilities: an in-app Chooser over
// photoDir and a Library in saveDir.
func NewPlatform(photoDir, saveDir string) Platform {
	lib := &Library{Dir: saveDir}
	ch := NewChooser(photoDir)
	return Platform{
		Picker:      ch,
		Permissions: lib,
		Saver:       lib,
		Chooser:     ch,
	}
}
