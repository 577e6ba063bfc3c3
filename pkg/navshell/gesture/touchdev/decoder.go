//go:build linux

package touchdev

import (
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/holoplot/go-evdev"
)

// Kind is the pointer action produced by a decoded frame.
type Kind int

const (
	KindDown Kind = iota + 1
	KindMove
	KindUp
	KindLost
)

// Action is one pointer action in viewport coordinates.
type Action struct {
	Kind Kind
	X    float64
	At   time.Time
}

// Axis maps raw device X values onto the viewport width.
type Axis struct {
	Min, Max int32
	Width    float64
}

func (a Axis) scale(raw int32) float64 {
	if a.Max <= a.Min {
		return float64(raw)
	}
	return float64(raw-a.Min) / float64(a.Max-a.Min) * a.Width
}

// Decoder groups evdev events into frames ending at SYN_REPORT and turns
// them into pointer actions.
type Decoder struct {
	axis Axis

	touching bool // state after the last complete frame
	next     bool // state being assembled in the current frame
	x        int32
	moved    bool
	slot     int32
	dropping bool // discarding events until the SYN_REPORT after SYN_DROPPED
}

// NewDecoder creates a decoder for the given axis.
func NewDecoder(axis Axis) *Decoder {
	return &Decoder{axis: axis}
}

// Feed consumes one event. It returns an action when the event completes a
// frame that changes the pointer.
func (d *Decoder) Feed(ev evdev.InputEvent) (Action, bool) {
	if d.dropping {
		if ev.Type == evdev.EV_SYN && ev.Code == evdev.SYN_REPORT {
			d.dropping = false
			d.next, d.moved = false, false
		}
		return Action{}, false
	}

	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			d.next = ev.Value != 0
		}

	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_SLOT:
			d.slot = ev.Value
		case evdev.ABS_MT_TRACKING_ID:
			if d.slot == 0 {
				d.next = ev.Value >= 0
			}
		case evdev.ABS_MT_POSITION_X:
			if d.slot == 0 {
				d.x, d.moved = ev.Value, true
			}
		case evdev.ABS_X:
			d.x, d.moved = ev.Value, true
		}

	case evdev.EV_SYN:
		switch ev.Code {
		case evdev.SYN_REPORT:
			return d.flush(timestamp(ev))
		case evdev.SYN_DROPPED:
			// The kernel buffer overflowed. Everything up to the next
			// SYN_REPORT belongs to a partial frame and is discarded.
			wasTouching := d.touching
			d.touching, d.next, d.moved = false, false, false
			d.dropping = true
			if wasTouching {
				return Action{Kind: KindLost, At: timestamp(ev)}, true
			}
		}
	}
	return Action{}, false
}

func (d *Decoder) flush(at time.Time) (Action, bool) {
	prev := d.touching
	d.touching = d.next
	moved := d.moved
	d.moved = false

	x := d.axis.scale(d.x)
	switch {
	case !prev && d.touching:
		return Action{Kind: KindDown, X: x, At: at}, true
	case prev && !d.touching:
		return Action{Kind: KindUp, X: x, At: at}, true
	case d.touching && moved:
		return Action{Kind: KindMove, X: x, At: at}, true
	}
	return Action{}, false
}

// Apply forwards an action to the machine.
func Apply(m gesture.Pointer, a Action) {
	switch a.Kind {
	case KindDown:
		m.PointerDown(a.X, a.At)
	case KindMove:
		m.PointerMove(a.X, a.At)
	case KindUp:
		m.PointerUp(a.X, a.At)
	case KindLost:
		m.PointerLost()
	}
}

func timestamp(ev evdev.InputEvent) time.Time {
	return time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*int64(time.Microsecond))
}
