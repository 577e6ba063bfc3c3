package router

import "github.com/BrandonKowalski/navshell/pkg/navshell/screens"

// Stack holds the screens left by forward navigation, most recent on top.
// The top entry is always the screen the user returns to on back.
//
// Stack is not safe for concurrent use; the Router serialises access.
type Stack struct {
	entries []screens.ID
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]screens.ID, 0, 8),
	}
}

// PushForward records the screen being left. Pushing the screen that is
// already on top is a no-op and reports false.
func (s *Stack) PushForward(current screens.ID) bool {
	if top, ok := s.Peek(); ok && top == current {
		return false
	}
	s.entries = append(s.entries, current)
	return true
}

// PopBack removes and returns the top entry.
// The second result is false if the stack is empty.
func (s *Stack) PopBack() (screens.ID, bool) {
	if len(s.entries) == 0 {
		return 0, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top entry without removing it.
func (s *Stack) Peek() (screens.ID, bool) {
	if len(s.entries) == 0 {
		return 0, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []screens.ID {
	out := make([]screens.ID, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
