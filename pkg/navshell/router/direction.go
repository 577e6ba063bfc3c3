package router

import "go.uber.org/atomic"

// Direction is the intent of the most recently initiated transition.
type Direction int32

const (
	Forward Direction = iota
	Back
)

// String returns "forward" or "back".
func (d Direction) String() string {
	if d == Back {
		return "back"
	}
	return "forward"
}

// DirectionTracker holds the current Direction. Only the Router writes it,
// immediately before it changes the active screen. Reads are lock free so a
// renderer on another goroutine can sample it.
type DirectionTracker struct {
	value atomic.Int32
}

// Get returns the current direction.
func (t *DirectionTracker) Get() Direction {
	return Direction(t.value.Load())
}

func (t *DirectionTracker) set(d Direction) {
	t.value.Store(int32(d))
}
