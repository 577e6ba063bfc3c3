// Package gesture recognises the edge-swipe "back" gesture.
//
// The recogniser is a four-phase state machine:
//
//	idle -> tracking -> committing | cancelling -> idle
//
// Every transition is a pure function of (Config, State, input), so the
// machine can be driven with synthetic samples in tests. Machine wraps the
// pure functions with velocity estimation and callbacks for real input.
package gesture

import (
	"math"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
)

// Phase is the recogniser phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
	PhaseCommitting
	PhaseCancelling
)

func (p Phase) String() string {
	switch p {
	case PhaseTracking:
		return "tracking"
	case PhaseCommitting:
		return "committing"
	case PhaseCancelling:
		return "cancelling"
	default:
		return "idle"
	}
}

// State is the full recogniser state. DeltaX is the clamped displacement
// away from the leading edge; VelocityX is in pixels per second, positive
// when moving away from the leading edge.
type State struct {
	Phase     Phase
	OriginX   float64
	DeltaX    float64
	VelocityX float64
}

// Config holds the gesture geometry and thresholds.
type Config struct {
	EdgeWidth        float64       // Width of the strip at the leading edge where a swipe may start
	MaxPull          float64       // Displacement is clamped to this distance
	ProgressDistance float64       // Displacement at which progress reaches 1
	CommitDistance   float64       // Minimum displacement to commit on release
	CommitVelocity   float64       // Minimum release velocity (px/s) to commit
	SettleDuration   time.Duration // Time for a full MaxPull snap back when cancelling
	RTL              bool          // Leading edge is the right edge
	ViewportWidth    float64       // Needed to locate the leading edge in RTL layouts
}

// DefaultConfig returns the standard thresholds for a left-to-right layout.
func DefaultConfig() Config {
	return Config{
		EdgeWidth:        constants.DefaultEdgeWidth,
		MaxPull:          constants.DefaultMaxPull,
		ProgressDistance: constants.DefaultProgressDistance,
		CommitDistance:   constants.DefaultCommitDistance,
		CommitVelocity:   constants.DefaultCommitVelocity,
		SettleDuration:   constants.DefaultSettleDuration,
	}
}

// InEdgeZone reports whether x lies in the leading-edge strip.
func (c Config) InEdgeZone(x float64) bool {
	if c.RTL {
		return x <= c.ViewportWidth && x >= c.ViewportWidth-c.EdgeWidth
	}
	return x >= 0 && x <= c.EdgeWidth
}

// Displacement returns the distance from originX to x away from the
// leading edge, clamped to [0, MaxPull].
func (c Config) Displacement(originX, x float64) float64 {
	d := x - originX
	if c.RTL {
		d = -d
	}
	return clamp(d, 0, c.MaxPull)
}

// Begin starts tracking if the machine is idle, swiping back is allowed and
// x is inside the edge zone. Both conditions are evaluated only here.
func Begin(c Config, s State, x float64, canSwipeBack bool) State {
	if s.Phase != PhaseIdle || !canSwipeBack || !c.InEdgeZone(x) {
		return s
	}
	return State{Phase: PhaseTracking, OriginX: x}
}

// Move applies a movement sample. velocity is measured along the swipe
// axis in pixels per second.
func Move(c Config, s State, x, velocity float64) State {
	if s.Phase != PhaseTracking {
		return s
	}
	s.DeltaX = c.Displacement(s.OriginX, x)
	s.VelocityX = velocity
	return s
}

// Release ends tracking. Committing requires both the distance and the
// velocity threshold; a fast short flick and a slow long drag both cancel.
func Release(c Config, s State) State {
	if s.Phase != PhaseTracking {
		return s
	}
	if s.DeltaX >= c.CommitDistance && s.VelocityX >= c.CommitVelocity {
		s.Phase = PhaseCommitting
	} else {
		s.Phase = PhaseCancelling
	}
	return s
}

// Interrupt forces a tracking gesture to cancel, for example when the
// pointer leaves the window or the input device goes away.
func Interrupt(s State) State {
	if s.Phase == PhaseTracking {
		s.Phase = PhaseCancelling
	}
	return s
}

// SettleStep advances the post-release animation by dt. Committing settles
// to idle at once; cancelling eases the displacement back to zero.
func SettleStep(c Config, s State, dt time.Duration) State {
	switch s.Phase {
	case PhaseCommitting:
		return State{}
	case PhaseCancelling:
		if c.SettleDuration <= 0 {
			return State{}
		}
		step := c.MaxPull * float64(dt) / float64(c.SettleDuration)
		s.DeltaX -= step
		s.VelocityX = 0
		if s.DeltaX <= 0 {
			return State{}
		}
		return s
	default:
		return s
	}
}

// Signals are the animation inputs derived from the displacement.
type Signals struct {
	Progress         float64 // 0..1 over ProgressDistance
	IndicatorOpacity float64 // back indicator alpha
	IndicatorScale   float64 // back indicator scale, 0.6..1
	ShadowOpacity    float64 // trailing shadow alpha on the outgoing view
}

// SignalsFor derives the animation signals for a displacement.
func SignalsFor(c Config, deltaX float64) Signals {
	progress := 0.0
	if c.ProgressDistance > 0 {
		progress = clamp(deltaX/c.ProgressDistance, 0, 1)
	}
	return Signals{
		Progress:         progress,
		IndicatorOpacity: progress,
		IndicatorScale:   0.6 + 0.4*progress,
		ShadowOpacity:    0.35 * progress,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
