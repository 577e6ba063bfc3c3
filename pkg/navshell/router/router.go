package router

import (
	"errors"
	"sync"

	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
)

// ErrUnknownScreen is reported when navigation targets an undefined screen.
var ErrUnknownScreen = errors.New("router: unknown screen")

// Transition describes one committed change of the active screen.
type Transition struct {
	From      screens.ID
	To        screens.ID
	Direction Direction
	// Fallback is true when back navigation found no history and routed
	// to the role's home screen instead.
	Fallback bool
}

// TransitionFunc is called after every change of the active screen.
type TransitionFunc func(t Transition)

// RoleFunc reports the current user role.
type RoleFunc func() screens.Role

// Router is the navigation facade. It is the only writer of the history
// stack and the direction tracker; screens call NavigateTo and GoBack and
// never touch either directly.
//
// All methods are safe for concurrent use. Taps, edge swipes and input
// device goroutines serialise on the same lock, so whichever call arrives
// first wins and the other sees the updated state.
type Router struct {
	mu        sync.Mutex
	stack     *Stack
	direction DirectionTracker
	active    screens.ID
	role      RoleFunc
	listeners []TransitionFunc
}

// New creates a Router showing start. role may be nil, which is treated as
// RoleNone.
func New(start screens.ID, role RoleFunc) *Router {
	if role == nil {
		role = func() screens.Role { return screens.RoleNone }
	}
	return &Router{
		stack:  NewStack(),
		active: start,
		role:   role,
	}
}

// OnTransition registers fn to be called after each active-screen change.
// Listeners run outside the router lock and may navigate again.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
	return r
}

// NavigateTo moves forward to screen. It is a no-op returning false when
// screen is already active or is not a defined screen.
func (r *Router) NavigateTo(screen screens.ID) bool {
	if !screen.Valid() {
		internal.GetInternalLogger().Warn("Ignoring navigation", "error", ErrUnknownScreen, "screen", int(screen))
		return false
	}

	r.mu.Lock()
	if screen == r.active {
		r.mu.Unlock()
		return false
	}

	from := r.active
	r.stack.PushForward(from)
	r.direction.set(Forward)
	r.active = screen
	t := Transition{From: from, To: screen, Direction: Forward}
	listeners := r.listeners
	r.mu.Unlock()

	internal.GetInternalLogger().Debug("Navigated", "from", from.String(), "to", screen.String(), "direction", Forward.String())
	notify(listeners, t)
	return true
}

// NavigatePath resolves a URL path and navigates to the matching screen.
func (r *Router) NavigatePath(path string) bool {
	return r.NavigateTo(screens.Resolve(path))
}

// GoBack returns to the previous screen and reports the new active screen.
// With empty history it routes to the home screen of the current role.
func (r *Router) GoBack() screens.ID {
	r.mu.Lock()
	from := r.active
	r.direction.set(Back)

	to, ok := r.stack.PopBack()
	fallback := !ok
	if fallback {
		to = screens.HomeFor(r.role())
	}

	if to == from {
		r.mu.Unlock()
		return to
	}

	r.active = to
	t := Transition{From: from, To: to, Direction: Back, Fallback: fallback}
	listeners := r.listeners
	r.mu.Unlock()

	internal.GetInternalLogger().Debug("Navigated", "from", from.String(), "to", to.String(), "direction", Back.String(), "fallback", fallback)
	notify(listeners, t)
	return to
}

// CanGoBack reports whether an edge swipe may start: history must be
// non-empty and the active screen must not be an entry or home screen.
func (r *Router) CanGoBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.stack.IsEmpty() && !screens.IsRoot(r.active)
}

// Active returns the screen currently shown.
func (r *Router) Active() screens.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Direction returns the direction of the most recently initiated transition.
func (r *Router) Direction() Direction {
	return r.direction.Get()
}

// History returns a copy of the back stack, bottom first.
func (r *Router) History() []screens.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Entries()
}

// Reset clears history and shows start without a transition. Use it when
// the session changes, for example on sign-out.
func (r *Router) Reset(start screens.ID) {
	r.mu.Lock()
	r.stack.Clear()
	r.active = start
	r.direction.set(Forward)
	r.mu.Unlock()
}

func notify(listeners []TransitionFunc, t Transition) {
	for _, fn := range listeners {
		fn(t)
	}
}
