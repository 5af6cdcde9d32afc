// SPDX-License-Identifier: Unlicense OR MIT

// Package session holds the editing session state and its transitions.
package session

// PlaceholderBackground references the bundled background shown before
// the user picks a photo.
const PlaceholderBackground = "asset:placeholder"

// Session is the state of one editing session. Empty references mean
// nothing is selected.
type Session struct {
	Background    string
	Sticker       string
	EditingActive bool
}

// Action is a user-driven change to a Session.
type Action interface {
	ImplementsAction()
}

// BackgroundPicked records a photo returned by the image picker.
type BackgroundPicked struct {
	URI string
}

// UsePlaceholder starts editing on the placeholder background.
type UsePlaceholder struct{}

// StickerSelected places a sticker on the canvas.
type StickerSelected struct {
	Ref string
}

// StickerCleared removes the sticker, keeping the background.
type StickerCleared struct{}

func (BackgroundPicked) ImplementsAction() {}
func (UsePlaceholder) ImplementsAction()   {}
func (StickerSelected) ImplementsAction()  {}
func (StickerCleared) ImplementsAction()   {}

// Reduce returns the session that results from applying a to s.
// EditingActive never goes back to false once set.
func Reduce(s Session, a Action) Session {
	switch a := a.(type) {
	case BackgroundPicked:
		if a.URI == "" {
			return s
		}
		s.Background = a.URI
		s.EditingActive = true
	case UsePlaceholder:
		if s.Background == "" {
			s.Background = PlaceholderBackground
		}
		s.EditingActive = true
	case StickerSelected:
		s.Sticker = a.Ref
	case StickerCleared:
		s.Sticker = ""
	}
	return s
}

// BackgroundOrPlaceholder returns the background reference to display.
func (s Session) BackgroundOrPlaceholder() string {
	if s.Background == "" {
		return PlaceholderBackground
	}
	return s.Background
}
