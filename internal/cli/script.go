package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell"
	"github.com/BrandonKowalski/navshell/pkg/navshell/config"
	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/BurntSushi/toml"
)

// Script is a recorded navigation session.
//
//	role = "consumer"
//	start = "consumer-home"
//
//	[[step]]
//	navigate = "job-detail"
//
//	[[step]]
//	swipe = { from = 4, to = 130, duration = "120ms" }
type Script struct {
	Role  string `toml:"role"`
	Start string `toml:"start"`
	Steps []Step `toml:"step"`
}

// Step is one user action. Exactly one field is set.
type Step struct {
	Navigate string          `toml:"navigate"`
	Path     string          `toml:"path"`
	Back     bool            `toml:"back"`
	Swipe    *Swipe          `toml:"swipe"`
	Wait     config.Duration `toml:"wait"`
}

// Swipe is a straight drag from one x position to another.
type Swipe struct {
	From     float64         `toml:"from"`
	To       float64         `toml:"to"`
	Duration config.Duration `toml:"duration"`
	Samples  int             `toml:"samples"`
}

// ParseScript decodes a TOML script and checks every step.
func ParseScript(text string) (Script, error) {
	var s Script
	md, err := toml.Decode(text, &s)
	if err != nil {
		return Script{}, fmt.Errorf("script: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Script{}, fmt.Errorf("script: unknown key %s", undecoded[0])
	}
	if s.Start == "" {
		s.Start = screens.HomeFor(screens.ParseRole(s.Role)).String()
	}
	if _, err := screens.Parse(s.Start); err != nil {
		return Script{}, fmt.Errorf("script: start: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return Script{}, fmt.Errorf("script: step %d: %w", i+1, err)
		}
	}
	return s, nil
}

func (s Step) validate() error {
	set := 0
	if s.Navigate != "" {
		if _, err := screens.Parse(s.Navigate); err != nil {
			return err
		}
		set++
	}
	if s.Path != "" {
		set++
	}
	if s.Back {
		set++
	}
	if s.Swipe != nil {
		set++
	}
	if s.Wait.Duration > 0 {
		set++
	}
	if set != 1 {
		return errors.New("exactly one of navigate, path, back, swipe or wait must be set")
	}
	return nil
}

// Replay drives shell through the script and writes one line per step.
// Swipe samples use synthetic timestamps so replays are deterministic;
// wait steps really sleep to let idle preloading run.
func Replay(w io.Writer, shell *navshell.Shell, script Script) {
	clock := time.Now()

	for i, step := range script.Steps {
		var action string
		switch {
		case step.Navigate != "":
			id, _ := screens.Parse(step.Navigate)
			shell.Navigate(id)
			action = "navigate " + step.Navigate
		case step.Path != "":
			shell.NavigatePath(step.Path)
			action = "path " + step.Path
		case step.Back:
			shell.Back()
			action = "back"
		case step.Swipe != nil:
			var outcome string
			clock, outcome = replaySwipe(shell, *step.Swipe, clock)
			action = "swipe " + outcome
		default:
			time.Sleep(step.Wait.Duration)
			action = "wait " + step.Wait.Duration.String()
		}

		line := fmt.Sprintf("%d\t%s\t-> %s", i+1, action, shell.Active())
		if t, ok := shell.TakeTransition(); ok {
			line += fmt.Sprintf("\t%s %s", t.Family, t.Direction)
		}
		fmt.Fprintln(w, line)
	}
}

func replaySwipe(shell *navshell.Shell, sw Swipe, clock time.Time) (time.Time, string) {
	samples := sw.Samples
	if samples < 1 {
		samples = 4
	}
	duration := sw.Duration.Duration
	if duration <= 0 {
		duration = 100 * time.Millisecond
	}

	if !shell.PointerDown(sw.From, clock) {
		return clock, "ignored"
	}

	step := duration / time.Duration(samples)
	for i := 1; i < samples; i++ {
		x := sw.From + (sw.To-sw.From)*float64(i)/float64(samples)
		shell.PointerMove(x, clock.Add(step*time.Duration(i)))
	}
	end := clock.Add(duration)
	outcome := shell.PointerUp(sw.To, end)

	// Let a cancelled swipe ease back before the next step.
	for i := 0; i < 100; i++ {
		if state, _ := shell.Gesture(); state.Phase == gesture.PhaseIdle {
			break
		}
		shell.Tick(16 * time.Millisecond)
	}
	return end, outcome.String()
}
