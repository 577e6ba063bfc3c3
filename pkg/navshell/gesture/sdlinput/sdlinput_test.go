package sdlinput

import (
	"testing"

	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func newAdapter(commits *int) (*Adapter, *gesture.Machine) {
	m := gesture.NewMachine(gesture.DefaultConfig(), func() bool { return true }, func() { *commits++ })
	return New(m, 400), m
}

func fingerDown(id sdl.FingerID, x float32, ms uint32) *sdl.TouchFingerEvent {
	return &sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, Timestamp: ms, FingerID: id, X: x}
}

func fingerMove(id sdl.FingerID, x float32, ms uint32) *sdl.TouchFingerEvent {
	return &sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, Timestamp: ms, FingerID: id, X: x}
}

func fingerUp(id sdl.FingerID, x float32, ms uint32) *sdl.TouchFingerEvent {
	return &sdl.TouchFingerEvent{Type: sdl.FINGERUP, Timestamp: ms, FingerID: id, X: x}
}

func TestFingerSwipeCommits(t *testing.T) {
	commits := 0
	a, _ := newAdapter(&commits)

	assert.True(t, a.Handle(fingerDown(1, 0.01, 0)))
	a.Handle(fingerMove(1, 0.2, 50))
	a.Handle(fingerMove(2, 0.9, 60)) // other finger ignored
	a.Handle(fingerUp(1, 0.35, 100))

	assert.Equal(t, 1, commits)
}

func TestSecondFingerCancels(t *testing.T) {
	commits := 0
	a, m := newAdapter(&commits)

	a.Handle(fingerDown(1, 0.01, 0))
	a.Handle(fingerMove(1, 0.2, 50))
	a.Handle(fingerDown(2, 0.5, 55))

	assert.Equal(t, gesture.PhaseCancelling, m.State().Phase)
	a.Handle(fingerUp(1, 0.35, 100))
	assert.Equal(t, 0, commits)
}

func TestFocusLossCancelsMouseDrag(t *testing.T) {
	commits := 0
	a, m := newAdapter(&commits)

	a.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Timestamp: 0})
	a.Handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 100, Timestamp: 30})
	assert.Equal(t, gesture.PhaseTracking, m.State().Phase)

	assert.True(t, a.Handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_LOST}))
	assert.Equal(t, gesture.PhaseCancelling, m.State().Phase)

	a.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 150, Timestamp: 40})
	assert.Equal(t, 0, commits)
}
