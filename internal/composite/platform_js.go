// SPDX-License-Identifier: Unlicense OR MIT

package composite

// DefaultPlatform is the export platform of this build.
const DefaultPlatform = Browser
