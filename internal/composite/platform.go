// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js
// +build !js

package composite

// DefaultPlatform is the export platform of this build.
const DefaultPlatform = Native
