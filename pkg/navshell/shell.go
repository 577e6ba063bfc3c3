package navshell

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/config"
	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
	"github.com/BrandonKowalski/navshell/pkg/navshell/preload"
	"github.com/BrandonKowalski/navshell/pkg/navshell/router"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/BrandonKowalski/navshell/pkg/navshell/transition"
	"github.com/google/uuid"
)

var _ gesture.Pointer = (*Shell)(nil)

// Options configures a Shell.
type Options struct {
	Config  *config.Config  // nil uses config.Default()
	Loaders preload.Loaders // must have exactly one loader per screen
	Role    router.RoleFunc // nil means the user has no role yet
	Start   screens.ID      // screen shown first; the zero value is Welcome
}

// ViewState is what the host should render for the active screen.
type ViewState struct {
	Screen screens.ID
	Title  string

	// Loading is true while the screen's module is still being fetched.
	// The host shows its fallback view until a later View call reports
	// the module.
	Loading bool

	Module preload.Module
	Err    error // load failure; offer Retry
}

// Shell wires the router, module cache, idle scheduler, gesture machine
// and transition selector into one navigation surface.
type Shell struct {
	id     string
	cfg    config.Config
	role   router.RoleFunc
	logger *slog.Logger

	router    *router.Router
	cache     *preload.Cache
	scheduler *preload.Scheduler
	machine   *gesture.Machine
	indicator *gesture.Indicator
	titles    *internal.Titles

	mu       sync.Mutex
	pending  *transition.VariantSet
	critical *time.Timer
	started  bool
	closed   bool
}

// New validates opts and builds a Shell. Nothing is loaded until Start.
func New(opts Options) (*Shell, error) {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewInfrastructureError("config", err)
	}
	if err := opts.Loaders.Validate(); err != nil {
		return nil, NewInfrastructureError("validate_loaders", err)
	}
	if !opts.Start.Valid() {
		return nil, NewInfrastructureError("start", ErrInvalidStart)
	}

	role := opts.Role
	if role == nil {
		role = func() screens.Role { return screens.RoleNone }
	}

	s := &Shell{
		id:        uuid.NewString(),
		cfg:       cfg,
		role:      role,
		router:    router.New(opts.Start, role),
		cache:     preload.NewCache(opts.Loaders),
		scheduler: preload.NewScheduler(cfg.Preload.IdleQuiet.Duration),
		indicator: gesture.NewIndicator(cfg.Gesture.IndicatorSize),
		titles:    internal.NewTitles(cfg.Locale.Language),
	}
	s.logger = internal.GetInternalLogger().With("session", s.id)

	s.machine = gesture.NewMachine(cfg.GestureSettings(), s.router.CanGoBack, func() {
		s.Back()
	})
	s.router.OnTransition(s.onTransition)

	return s, nil
}

// ID returns the session id attached to this shell's log lines.
func (s *Shell) ID() string {
	return s.id
}

// Start loads the first screen and, after the configured delay, queues the
// critical screens for idle-time preloading. Calling Start again is a
// no-op; calling it after Close returns ErrClosed.
func (s *Shell) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.critical = time.AfterFunc(s.cfg.Preload.CriticalDelay.Duration, s.preloadCritical)
	s.mu.Unlock()

	active := s.router.Active()
	s.cache.EnsureLoaded(active)
	s.schedulePreload(active)

	s.logger.Info("Shell started", "screen", active.String(), "role", s.role().String())
	return nil
}

func (s *Shell) preloadCritical() {
	targets := preload.CriticalTargets()
	s.scheduler.Schedule(func() {
		s.cache.EnsureLoadedAll(targets)
	}, s.cfg.Preload.IdleTimeout.Duration)
}

func (s *Shell) schedulePreload(screen screens.ID) {
	targets := preload.TargetsFor(screen, s.role())
	if len(targets) == 0 {
		return
	}
	s.scheduler.Schedule(func() {
		s.logger.Debug("Preloading", "from", screen.String(), "targets", len(targets))
		s.cache.EnsureLoadedAll(targets)
	}, s.cfg.Preload.IdleTimeout.Duration)
}

func (s *Shell) onTransition(t router.Transition) {
	// The destination is needed now, not at idle time.
	s.cache.EnsureLoaded(t.To)
	s.schedulePreload(t.To)

	variants := transition.VariantsFor(t.To, t.Direction)
	s.mu.Lock()
	s.pending = &variants
	s.mu.Unlock()

	// A tap that navigated mid-swipe ends the swipe.
	s.machine.PointerLost()
}

// OnTransition registers fn to run after every screen change, after the
// shell has queued the destination's load and transition.
func (s *Shell) OnTransition(fn router.TransitionFunc) {
	s.router.OnTransition(fn)
}

// Navigate moves forward to screen. It reports false for the active screen,
// an undefined screen, or a closed shell.
func (s *Shell) Navigate(screen screens.ID) bool {
	if s.isClosed() {
		return false
	}
	s.scheduler.Touch()
	return s.router.NavigateTo(screen)
}

// NavigatePath navigates to the screen a URL path resolves to.
func (s *Shell) NavigatePath(path string) bool {
	return s.Navigate(screens.Resolve(path))
}

// Back returns to the previous screen, or the role's home screen when
// there is no history, and reports the new active screen.
func (s *Shell) Back() screens.ID {
	if s.isClosed() {
		return s.router.Active()
	}
	s.scheduler.Touch()
	return s.router.GoBack()
}

// CanGoBack reports whether an edge swipe may start on the active screen.
func (s *Shell) CanGoBack() bool {
	return s.router.CanGoBack()
}

// Active returns the active screen.
func (s *Shell) Active() screens.ID {
	return s.router.Active()
}

// Direction returns the direction of the latest transition.
func (s *Shell) Direction() router.Direction {
	return s.router.Direction()
}

// History returns a copy of the back stack, bottom first.
func (s *Shell) History() []screens.ID {
	return s.router.History()
}

// Reset clears history and shows start, for example after sign-out.
func (s *Shell) Reset(start screens.ID) {
	if !start.Valid() {
		return
	}
	s.machine.Reset()
	s.router.Reset(start)
	s.cache.EnsureLoaded(start)
}

// View reports what to render for the active screen. It never blocks.
func (s *Shell) View() ViewState {
	active := s.router.Active()
	v := ViewState{
		Screen: active,
		Title:  s.titles.Screen(active.String()),
	}

	h := s.cache.EnsureLoaded(active)
	if !h.Ready() {
		v.Loading = true
		return v
	}
	if err := h.Err(); err != nil {
		v.Err = err
		return v
	}
	// Ready handles return immediately.
	v.Module, _ = h.Wait(context.Background())
	return v
}

// Retry drops a failed load of the active screen and starts it again.
// Pending and successful loads are returned unchanged.
func (s *Shell) Retry() *preload.Handle {
	active := s.router.Active()
	if h, ok := s.cache.Lookup(active); ok && (!h.Ready() || h.Err() == nil) {
		return h
	}
	s.cache.Forget(active)
	return s.cache.EnsureLoaded(active)
}

// Handle returns the load handle for a screen, starting the load if needed.
func (s *Shell) Handle(screen screens.ID) *preload.Handle {
	return s.cache.EnsureLoaded(screen)
}

// CacheStats reports module cache activity.
func (s *Shell) CacheStats() preload.CacheStats {
	return s.cache.Stats()
}

// TakeTransition returns the variant set of the latest screen change. Each
// change is reported once; later calls return false until the next change.
func (s *Shell) TakeTransition() (transition.VariantSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return transition.VariantSet{}, false
	}
	v := *s.pending
	s.pending = nil
	return v, true
}

// Title returns the localised title of a screen.
func (s *Shell) Title(screen screens.ID) string {
	return s.titles.Screen(screen.String())
}

// BackLabel returns the accessibility label of the back affordance: the
// screen that Back would show.
func (s *Shell) BackLabel() string {
	target := screens.HomeFor(s.role())
	if h := s.router.History(); len(h) > 0 {
		target = h[len(h)-1]
	}
	return s.titles.BackTo(s.Title(target))
}

// Gesture returns the edge-swipe state and its derived animation signals.
func (s *Shell) Gesture() (gesture.State, gesture.Signals) {
	return s.machine.State(), s.machine.Signals()
}

// OnGesture registers an observer for every gesture state change.
func (s *Shell) OnGesture(fn gesture.ChangeFunc) {
	s.machine.OnChange(fn)
}

// IndicatorSprite renders the back indicator for the current gesture. It
// returns nil when nothing should be drawn.
func (s *Shell) IndicatorSprite() (*image.RGBA, error) {
	return s.indicator.Render(s.machine.Signals())
}

// PointerDown starts an edge swipe if x is in the edge zone and back
// navigation is possible. A closed shell starts no swipes.
func (s *Shell) PointerDown(x float64, at time.Time) bool {
	if s.isClosed() {
		return false
	}
	s.scheduler.Touch()
	return s.machine.PointerDown(x, at)
}

// PointerMove feeds a pointer movement sample.
func (s *Shell) PointerMove(x float64, at time.Time) {
	s.scheduler.Touch()
	s.machine.PointerMove(x, at)
}

// PointerUp releases the pointer. A committed swipe navigates back before
// PointerUp returns.
func (s *Shell) PointerUp(x float64, at time.Time) gesture.Outcome {
	s.scheduler.Touch()
	return s.machine.PointerUp(x, at)
}

// PointerLost cancels a swipe in progress.
func (s *Shell) PointerLost() {
	s.machine.PointerLost()
}

// SetViewportWidth updates the width used for right-to-left edge zones.
func (s *Shell) SetViewportWidth(width float64) {
	s.machine.SetViewportWidth(width)
}

// Tick advances gesture animations by dt. Call it once per frame.
func (s *Shell) Tick(dt time.Duration) {
	s.machine.Tick(dt)
}

// Close stops preloading. Idle work already queued runs before Close
// returns; loads already started finish in the background.
func (s *Shell) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.critical != nil {
		s.critical.Stop()
	}
	s.mu.Unlock()

	s.machine.Reset()
	s.scheduler.Close()
	s.logger.Debug("Shell closed", "stats", s.cache.Stats())
}

func (s *Shell) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
