// Package transition picks the animation used when the active screen
// changes. Selection is a pure function of the incoming screen and the
// navigation direction; there is no state.
package transition

import (
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/BrandonKowalski/navshell/pkg/navshell/router"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/samber/lo"
)

// Family is a group of related animation variants.
type Family int

const (
	FamilySlide     Family = iota // horizontal push for regular screens
	FamilyFadeScale               // fade with a slight zoom for modal-like screens
)

func (f Family) String() string {
	if f == FamilyFadeScale {
		return "fade-scale"
	}
	return "slide"
}

// Frame is one keyframe of a screen view. OffsetX is a fraction of the
// viewport width; positive values are towards the trailing edge.
type Frame struct {
	OffsetX float64
	Opacity float64
	Scale   float64
}

// Timing is the shared timing curve of every variant.
type Timing struct {
	Duration time.Duration
	Curve    [4]float64 // cubic-bezier control points
}

// VariantSet is everything a renderer needs to cross-fade the outgoing and
// incoming views for one transition.
type VariantSet struct {
	Family    Family
	Direction router.Direction
	Initial   Frame // incoming view before the transition
	Animate   Frame // incoming view at rest
	Exit      Frame // outgoing view at the end of the transition
	Timing    Timing
}

// modalLike screens use the fade-scale family.
var modalLike = []screens.ID{
	screens.Review,
	screens.Payment,
	screens.Notifications,
	screens.Help,
}

// IsModalLike reports whether screen uses the fade-scale family.
func IsModalLike(screen screens.ID) bool {
	return lo.Contains(modalLike, screen)
}

// FamilyFor returns the variant family of screen.
func FamilyFor(screen screens.ID) Family {
	if IsModalLike(screen) {
		return FamilyFadeScale
	}
	return FamilySlide
}

// DefaultTiming is the fixed timing used by both families.
func DefaultTiming() Timing {
	return Timing{
		Duration: constants.DefaultTransitionDuration,
		Curve:    constants.DefaultTransitionCurve,
	}
}

var rest = Frame{OffsetX: 0, Opacity: 1, Scale: 1}

// VariantsFor selects the variant set for a transition into screen. The
// direction flips which side views enter from and leave towards.
func VariantsFor(screen screens.ID, dir router.Direction) VariantSet {
	v := VariantSet{
		Family:    FamilyFor(screen),
		Direction: dir,
		Animate:   rest,
		Timing:    DefaultTiming(),
	}

	switch v.Family {
	case FamilyFadeScale:
		if dir == router.Back {
			v.Initial = Frame{Opacity: 0, Scale: 1.04}
			v.Exit = Frame{Opacity: 0, Scale: 0.96}
		} else {
			v.Initial = Frame{Opacity: 0, Scale: 0.96}
			v.Exit = Frame{Opacity: 0, Scale: 1.04}
		}
	default:
		if dir == router.Back {
			v.Initial = Frame{OffsetX: -0.3, Opacity: 1, Scale: 1}
			v.Exit = Frame{OffsetX: 1, Opacity: 1, Scale: 1}
		} else {
			v.Initial = Frame{OffsetX: 1, Opacity: 1, Scale: 1}
			v.Exit = Frame{OffsetX: -0.3, Opacity: 1, Scale: 1}
		}
	}

	return v
}
