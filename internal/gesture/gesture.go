// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture recognizes the sticker manipulation gestures.

Sticker accepts low level pointer Events from an event Queue and
reduces them to drag distances and pinch factors. One pointer drags,
two pointers pinch, the mouse wheel zooms and a double tap enlarges.
*/
package gesture

import (
	"image"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
)

// Sticker detects drag and pinch gestures on a sticker.
type Sticker struct {
	// WheelStep is the scroll distance in pixels that scales the
	// sticker by a factor e. Zero means DefaultWheelStep.
	WheelStep float32

	pointers []touch
	grab     bool
	// Last completed tap, for double tap detection.
	lastTap time.Duration
	tapped  bool
	moved   float32
}

// EventType of a sticker gesture event.
type EventType uint8

// Event is a recognized sticker gesture.
type Event struct {
	Type EventType
	// Delta is the translation in pixels of a Drag.
	Delta f32.Point
	// Factor is the scale multiplier of a Pinch.
	Factor float32
}

type touch struct {
	id  pointer.ID
	pos f32.Point
}

const (
	// Drag is reported when the sticker is moved.
	Drag EventType = iota
	// Pinch is reported when the sticker is scaled.
	Pinch
)

const (
	// DefaultWheelStep is the default WheelStep.
	DefaultWheelStep = 200
	// DoubleTapFactor is the Pinch factor of a double tap.
	DoubleTapFactor = 2

	doubleTapDuration = 300 * time.Millisecond
	// Maximum travel of a pointer still counted as a tap.
	tapSlop = 6
	// Scroll distances are clamped to this range by the router.
	scrollRange = 1 << 20
)

// Add the handler to the operation list to receive sticker events.
func (s *Sticker) Add(ops *op.Ops) {
	pointer.InputOp{
		Tag:   s,
		Grab:  s.grab,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
		ScrollBounds: image.Rectangle{
			Min: image.Pt(-scrollRange, -scrollRange),
			Max: image.Pt(scrollRange, scrollRange),
		},
	}.Add(ops)
}

// Active reports whether a pointer is manipulating the sticker.
func (s *Sticker) Active() bool {
	return len(s.pointers) > 0
}

// Events returns the next sticker events, if any.
func (s *Sticker) Events(q event.Queue) []Event {
	var events []Event
	for _, evt := range q.Events(s) {
		e, ok := evt.(pointer.Event)
		if !ok {
			continue
		}
		events = s.process(events, e)
	}
	return events
}

func (s *Sticker) process(events []Event, e pointer.Event) []Event {
	switch e.Type {
	case pointer.Press:
		if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
			break
		}
		if len(s.pointers) >= 2 || s.index(e.PointerID) >= 0 {
			break
		}
		if len(s.pointers) == 0 {
			s.moved = 0
		}
		s.pointers = append(s.pointers, touch{id: e.PointerID, pos: e.Position})
		s.grab = true
	case pointer.Drag:
		i := s.index(e.PointerID)
		if i < 0 {
			break
		}
		switch len(s.pointers) {
		case 1:
			d := e.Position.Sub(s.pointers[0].pos)
			s.pointers[0].pos = e.Position
			s.moved += length(d)
			if d != (f32.Point{}) {
				events = append(events, Event{Type: Drag, Delta: d})
			}
		case 2:
			oldMid, oldDist := s.span()
			s.pointers[i].pos = e.Position
			mid, dist := s.span()
			s.moved += tapSlop + 1
			if d := mid.Sub(oldMid); d != (f32.Point{}) {
				events = append(events, Event{Type: Drag, Delta: d})
			}
			if oldDist > 0 && dist > 0 && dist != oldDist {
				events = append(events, Event{Type: Pinch, Factor: dist / oldDist})
			}
		}
	case pointer.Release:
		i := s.index(e.PointerID)
		if i < 0 {
			break
		}
		single := len(s.pointers) == 1
		s.remove(i)
		if !single {
			break
		}
		s.grab = false
		if s.moved > tapSlop {
			s.tapped = false
			break
		}
		if s.tapped && e.Time-s.lastTap <= doubleTapDuration {
			s.tapped = false
			events = append(events, Event{Type: Pinch, Factor: DoubleTapFactor})
			break
		}
		s.tapped = true
		s.lastTap = e.Time
	case pointer.Cancel:
		s.pointers = s.pointers[:0]
		s.grab = false
		s.tapped = false
	case pointer.Scroll:
		step := s.WheelStep
		if step <= 0 {
			step = DefaultWheelStep
		}
		if e.Scroll.Y != 0 {
			f := float32(math.Exp(float64(-e.Scroll.Y / step)))
			events = append(events, Event{Type: Pinch, Factor: f})
		}
	}
	return events
}

// span returns the midpoint and distance of the two active pointers.
func (s *Sticker) span() (f32.Point, float32) {
	a, b := s.pointers[0].pos, s.pointers[1].pos
	return a.Add(b).Mul(0.5), length(b.Sub(a))
}

func (s *Sticker) index(id pointer.ID) int {
	for i, p := range s.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

func (s *Sticker) remove(i int) {
	s.pointers = append(s.pointers[:i], s.pointers[i+1:]...)
}

func length(p f32.Point) float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

func (t EventType) String() string {
	switch t {
	case Drag:
		return "Drag"
	case Pinch:
		return "Pinch"
	default:
		panic("invalid EventType")
	}
}
