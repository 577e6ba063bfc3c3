// Package sdlinput feeds SDL touch, mouse and window events into an
// edge-swipe gesture machine.
package sdlinput

import (
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/veandco/go-sdl2/sdl"
)

// Adapter translates SDL events for one window into Machine calls.
//
// Finger coordinates arrive normalised to 0..1 and are scaled by the
// window width. Once any finger event has been seen, mouse events are
// ignored because SDL synthesises them from touches.
type Adapter struct {
	machine gesture.Pointer
	width   float64
	base    time.Time

	finger       sdl.FingerID
	fingerActive bool
	sawTouch     bool
	mouseDown    bool
}

// New creates an adapter for a window width logical pixels wide.
func New(machine gesture.Pointer, width float64) *Adapter {
	machine.SetViewportWidth(width)
	return &Adapter{
		machine: machine,
		width:   width,
		base:    time.Now(),
	}
}

// Handle processes one SDL event and reports whether it was pointer or
// window input relevant to the gesture.
func (a *Adapter) Handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.TouchFingerEvent:
		a.sawTouch = true
		a.handleFinger(e)
		return true

	case *sdl.MouseButtonEvent:
		if a.sawTouch || e.Button != sdl.BUTTON_LEFT {
			return false
		}
		at := a.at(e.Timestamp)
		x := float64(e.X)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			a.mouseDown = a.machine.PointerDown(x, at)
		} else if e.Type == sdl.MOUSEBUTTONUP && a.mouseDown {
			a.mouseDown = false
			a.machine.PointerUp(x, at)
		}
		return true

	case *sdl.MouseMotionEvent:
		if a.sawTouch || !a.mouseDown {
			return false
		}
		a.machine.PointerMove(float64(e.X), a.at(e.Timestamp))
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_FOCUS_LOST, sdl.WINDOWEVENT_LEAVE, sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
			a.lose()
			return true
		case sdl.WINDOWEVENT_SIZE_CHANGED, sdl.WINDOWEVENT_RESIZED:
			a.width = float64(e.Data1)
			a.machine.SetViewportWidth(a.width)
			return true
		}

	case *sdl.QuitEvent:
		a.lose()
		return true
	}
	return false
}

func (a *Adapter) handleFinger(e *sdl.TouchFingerEvent) {
	x := float64(e.X) * a.width
	at := a.at(e.Timestamp)

	switch e.Type {
	case sdl.FINGERDOWN:
		if a.fingerActive {
			// A second finger turns the swipe into something else.
			a.lose()
			return
		}
		if a.machine.PointerDown(x, at) {
			a.finger = e.FingerID
			a.fingerActive = true
		}
	case sdl.FINGERMOTION:
		if a.fingerActive && e.FingerID == a.finger {
			a.machine.PointerMove(x, at)
		}
	case sdl.FINGERUP:
		if a.fingerActive && e.FingerID == a.finger {
			a.fingerActive = false
			a.machine.PointerUp(x, at)
		}
	}
}

func (a *Adapter) lose() {
	a.fingerActive = false
	a.mouseDown = false
	a.machine.PointerLost()
}

// at converts an SDL millisecond timestamp into wall time.
func (a *Adapter) at(ticks uint32) time.Time {
	return a.base.Add(time.Duration(ticks) * time.Millisecond)
}
