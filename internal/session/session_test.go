// SPDX-License-Identifier: Unlicense OR MIT

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	editing := Session{Background: "photoA", Sticker: "emoji:😀", EditingActive: true}
	for _, tc := range []struct {
		label  string
		start  Session
		action Action
		want   Session
	}{
		{
			label:  "pick from idle",
			start:  Session{},
			action: BackgroundPicked{URI: "photoA"},
			want:   Session{Background: "photoA", EditingActive: true},
		},
		{
			label:  "pick replaces background",
			start:  editing,
			action: BackgroundPicked{URI: "photoB"},
			want:   Session{Background: "photoB", Sticker: "emoji:😀", EditingActive: true},
		},
		{
			label:  "empty pick is ignored",
			start:  Session{},
			action: BackgroundPicked{},
			want:   Session{},
		},
		{
			label:  "use placeholder",
			start:  Session{},
			action: UsePlaceholder{},
			want:   Session{Background: PlaceholderBackground, EditingActive: true},
		},
		{
			label:  "placeholder keeps picked photo",
			start:  Session{Background: "photoA", EditingActive: true},
			action: UsePlaceholder{},
			want:   Session{Background: "photoA", EditingActive: true},
		},
		{
			label:  "select sticker",
			start:  Session{Background: "photoA", EditingActive: true},
			action: StickerSelected{Ref: "emoji:😎"},
			want:   Session{Background: "photoA", Sticker: "emoji:😎", EditingActive: true},
		},
		{
			label:  "clear sticker keeps background and editing",
			start:  editing,
			action: StickerCleared{},
			want:   Session{Background: "photoA", EditingActive: true},
		},
	} {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, Reduce(tc.start, tc.action))
		})
	}
}

func TestBackgroundOrPlaceholder(t *testing.T) {
	assert.Equal(t, PlaceholderBackground, Session{}.BackgroundOrPlaceholder())
	assert.Equal(t, "photoA", Session{Background: "photoA"}.BackgroundOrPlaceholder())
}
