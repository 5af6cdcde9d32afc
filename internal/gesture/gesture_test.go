// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"image"
	"math"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/io/router"
	"gioui.org/op"
	"gioui.org/op/clip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseDragThroughRouter(t *testing.T) {
	var s Sticker
	var ops op.Ops
	area := clip.Rect(image.Rect(0, 0, 400, 400)).Push(&ops)
	s.Add(&ops)
	area.Pop()

	var r router.Router
	r.Frame(&ops)
	r.Queue(
		pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(100, 100)},
		pointer.Event{Type: pointer.Drag, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(110, 130)},
		pointer.Event{Type: pointer.Release, Source: pointer.Mouse, Position: f32.Pt(110, 130)},
	)

	events := s.Events(&r)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Type: Drag, Delta: f32.Pt(10, 30)}, events[0])
	assert.False(t, s.Active())
}

func TestTwoFingerPinch(t *testing.T) {
	var s Sticker
	events := feed(&s,
		touchEvent(pointer.Press, 1, 100, 100, 0),
		touchEvent(pointer.Press, 2, 200, 100, 0),
		// Second finger moves away, doubling the span.
		touchEvent(pointer.Drag, 2, 300, 100, 0),
	)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Type: Drag, Delta: f32.Pt(50, 0)}, events[0])
	assert.Equal(t, Pinch, events[1].Type)
	assert.InDelta(t, 2, events[1].Factor, 1e-6)
	assert.True(t, s.Active())

	// Lifting one finger turns the gesture back into a drag.
	events = feed(&s,
		touchEvent(pointer.Release, 2, 300, 100, 0),
		touchEvent(pointer.Drag, 1, 90, 95, 0),
	)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Type: Drag, Delta: f32.Pt(-10, -5)}, events[0])
}

func TestThirdPointerIgnored(t *testing.T) {
	var s Sticker
	events := feed(&s,
		touchEvent(pointer.Press, 1, 0, 0, 0),
		touchEvent(pointer.Press, 2, 10, 0, 0),
		touchEvent(pointer.Press, 3, 50, 50, 0),
		touchEvent(pointer.Drag, 3, 80, 80, 0),
	)
	assert.Empty(t, events)
}

func TestDoubleTap(t *testing.T) {
	for _, tc := range []struct {
		label string
		gap   time.Duration
		want  int
	}{
		{label: "double tap", gap: doubleTapDuration - time.Millisecond, want: 1},
		{label: "two slow taps", gap: doubleTapDuration + time.Millisecond, want: 0},
	} {
		t.Run(tc.label, func(t *testing.T) {
			var s Sticker
			events := feed(&s,
				touchEvent(pointer.Press, 1, 50, 50, 0),
				touchEvent(pointer.Release, 1, 50, 50, 100*time.Millisecond),
				touchEvent(pointer.Press, 1, 51, 50, 100*time.Millisecond+tc.gap-10*time.Millisecond),
				touchEvent(pointer.Release, 1, 51, 50, 100*time.Millisecond+tc.gap),
			)
			pinches := filter(events, Pinch)
			require.Len(t, pinches, tc.want)
			if tc.want > 0 {
				assert.Equal(t, float32(DoubleTapFactor), pinches[0].Factor)
			}
		})
	}
}

func TestDragIsNotTap(t *testing.T) {
	var s Sticker
	events := feed(&s,
		touchEvent(pointer.Press, 1, 50, 50, 0),
		touchEvent(pointer.Release, 1, 50, 50, 10*time.Millisecond),
		touchEvent(pointer.Press, 1, 50, 50, 20*time.Millisecond),
		touchEvent(pointer.Drag, 1, 90, 50, 30*time.Millisecond),
		touchEvent(pointer.Release, 1, 90, 50, 40*time.Millisecond),
	)
	assert.Empty(t, filter(events, Pinch))
	assert.Len(t, filter(events, Drag), 1)
}

func TestWheelZoom(t *testing.T) {
	var s Sticker
	events := feed(&s,
		pointer.Event{Type: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(0, -DefaultWheelStep)},
		pointer.Event{Type: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(0, DefaultWheelStep)},
		pointer.Event{Type: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(25, 0)},
	)
	require.Len(t, events, 2)
	assert.InDelta(t, math.E, events[0].Factor, 1e-5)
	assert.InDelta(t, 1/math.E, events[1].Factor, 1e-5)
}

func TestCancelDropsPointers(t *testing.T) {
	var s Sticker
	feed(&s,
		touchEvent(pointer.Press, 1, 0, 0, 0),
		pointer.Event{Type: pointer.Cancel},
	)
	assert.False(t, s.Active())
	assert.Empty(t, feed(&s, touchEvent(pointer.Drag, 1, 10, 10, 0)))
}

func feed(s *Sticker, evts ...pointer.Event) []Event {
	var events []Event
	for _, e := range evts {
		events = s.process(events, e)
	}
	return events
}

func touchEvent(typ pointer.Type, id pointer.ID, x, y float32, at time.Duration) pointer.Event {
	return pointer.Event{
		Type:      typ,
		Source:    pointer.Touch,
		PointerID: id,
		Position:  f32.Pt(x, y),
		Time:      at,
	}
}

func filter(events []Event, typ EventType) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
