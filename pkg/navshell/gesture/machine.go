package gesture

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
)

// Outcome is how a released gesture ended.
type Outcome int

const (
	OutcomeNone      Outcome = iota // no gesture was being tracked
	OutcomeCommitted                // back navigation was triggered
	OutcomeCancelled                // the view snaps back, no navigation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Pointer is the input surface that device adapters drive. *Machine
// implements it; wrappers can add their own bookkeeping around each call.
type Pointer interface {
	PointerDown(x float64, at time.Time) bool
	PointerMove(x float64, at time.Time)
	PointerUp(x float64, at time.Time) Outcome
	PointerLost()
	SetViewportWidth(width float64)
}

// ChangeFunc observes every state change together with its derived signals.
type ChangeFunc func(s State, sig Signals)

// Machine drives the edge-swipe recogniser from pointer samples.
//
// canSwipeBack is consulted once per gesture, at pointer down. onCommit is
// the same back entry point explicit back taps use. Both run outside the
// machine lock.
type Machine struct {
	mu     sync.Mutex
	config Config
	state  State

	lastX  float64
	lastAt time.Time

	canSwipeBack func() bool
	onCommit     func()
	onChange     ChangeFunc
}

// NewMachine creates an idle machine.
func NewMachine(config Config, canSwipeBack func() bool, onCommit func()) *Machine {
	if canSwipeBack == nil {
		canSwipeBack = func() bool { return false }
	}
	if onCommit == nil {
		onCommit = func() {}
	}
	return &Machine{
		config:       config,
		canSwipeBack: canSwipeBack,
		onCommit:     onCommit,
	}
}

// OnChange registers fn to observe state changes.
func (m *Machine) OnChange(fn ChangeFunc) *Machine {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
	return m
}

// SetViewportWidth updates the viewport width used for RTL edge detection.
func (m *Machine) SetViewportWidth(width float64) {
	m.mu.Lock()
	m.config.ViewportWidth = width
	m.mu.Unlock()
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// State returns the current recogniser state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Signals returns the animation signals for the current displacement.
func (m *Machine) Signals() Signals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SignalsFor(m.config, m.state.DeltaX)
}

// PointerDown starts a gesture at x. It reports whether tracking began.
func (m *Machine) PointerDown(x float64, at time.Time) bool {
	m.mu.Lock()
	if m.state.Phase != PhaseIdle || !m.config.InEdgeZone(x) {
		m.mu.Unlock()
		return false
	}
	cfg := m.config
	m.mu.Unlock()

	allowed := m.canSwipeBack()

	m.mu.Lock()
	next := Begin(cfg, m.state, x, allowed)
	if next.Phase != PhaseTracking {
		m.mu.Unlock()
		return false
	}
	m.state = next
	m.lastX, m.lastAt = x, at
	notify := m.snapshot()
	m.mu.Unlock()

	notify()
	return true
}

// PointerMove feeds a movement sample.
func (m *Machine) PointerMove(x float64, at time.Time) {
	m.mu.Lock()
	if m.state.Phase != PhaseTracking {
		m.mu.Unlock()
		return
	}
	m.state = Move(m.config, m.state, x, m.velocity(x, at))
	m.lastX, m.lastAt = x, at
	notify := m.snapshot()
	m.mu.Unlock()

	notify()
}

// PointerUp releases the gesture at x. A committed gesture stays in
// committing while the back callback runs, then returns to idle. A
// cancelled gesture stays in cancelling until Tick has eased it back.
func (m *Machine) PointerUp(x float64, at time.Time) Outcome {
	m.mu.Lock()
	if m.state.Phase != PhaseTracking {
		m.mu.Unlock()
		return OutcomeNone
	}

	m.state = Move(m.config, m.state, x, m.releaseVelocity(x, at))
	m.state = Release(m.config, m.state)
	released := m.state
	notify := m.snapshot()
	m.mu.Unlock()

	internal.GetInternalLogger().Debug("Edge swipe released",
		"phase", released.Phase.String(),
		"delta", released.DeltaX,
		"velocity", released.VelocityX)

	notify()
	if released.Phase != PhaseCommitting {
		return OutcomeCancelled
	}

	// Observers see committing while the back navigation runs, then idle.
	m.onCommit()

	m.mu.Lock()
	if m.state.Phase != PhaseCommitting {
		m.mu.Unlock()
		return OutcomeCommitted
	}
	m.state = SettleStep(m.config, m.state, 0)
	notify = m.snapshot()
	m.mu.Unlock()

	notify()
	return OutcomeCommitted
}

// PointerLost forces a tracking gesture to cancel.
func (m *Machine) PointerLost() {
	m.mu.Lock()
	if m.state.Phase != PhaseTracking {
		m.mu.Unlock()
		return
	}
	m.state = Interrupt(m.state)
	notify := m.snapshot()
	m.mu.Unlock()

	internal.GetInternalLogger().Debug("Edge swipe interrupted")
	notify()
}

// Tick advances the snap-back animation by dt. Call it every frame while
// the phase is cancelling.
func (m *Machine) Tick(dt time.Duration) {
	m.mu.Lock()
	if m.state.Phase != PhaseCancelling {
		m.mu.Unlock()
		return
	}
	m.state = SettleStep(m.config, m.state, dt)
	notify := m.snapshot()
	m.mu.Unlock()

	notify()
}

// Reset drops any gesture in progress without navigating.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.state = State{}
	m.lastAt = time.Time{}
	notify := m.snapshot()
	m.mu.Unlock()

	notify()
}

// velocity estimates px/s along the swipe axis from the previous sample.
// Samples with no elapsed time keep the previous estimate.
func (m *Machine) velocity(x float64, at time.Time) float64 {
	dt := at.Sub(m.lastAt).Seconds()
	if m.lastAt.IsZero() || dt <= 0 {
		return m.state.VelocityX
	}
	v := (x - m.lastX) / dt
	if m.config.RTL {
		v = -v
	}
	return v
}

// releaseVelocity is the velocity at lift-off. Touch hardware usually
// reports the lift without a new position, so an unchanged position keeps
// the last estimate unless the finger rested longer than the velocity window.
func (m *Machine) releaseVelocity(x float64, at time.Time) float64 {
	if x != m.lastX {
		return m.velocity(x, at)
	}
	if at.Sub(m.lastAt) > constants.DefaultVelocityWindow {
		return 0
	}
	return m.state.VelocityX
}

// snapshot captures the observer call while the lock is held.
func (m *Machine) snapshot() func() {
	fn := m.onChange
	if fn == nil {
		return func() {}
	}
	s := m.state
	sig := SignalsFor(m.config, s.DeltaX)
	return func() { fn(s, sig) }
}
