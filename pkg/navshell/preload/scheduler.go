package preload

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
	"go.uber.org/atomic"
)

// RunReason says why a scheduled task ran.
type RunReason int

const (
	RanIdle    RunReason = iota + 1 // host was quiet
	RanTimeout                      // timeout elapsed first
	RanOnClose                      // scheduler closed while waiting
)

func (r RunReason) String() string {
	switch r {
	case RanIdle:
		return "idle"
	case RanTimeout:
		return "timeout"
	case RanOnClose:
		return "close"
	default:
		return "pending"
	}
}

// Task is one scheduled unit of idle work.
type Task struct {
	done   chan struct{}
	reason RunReason
	err    error
}

// Done is closed after the work has run.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Reason reports why the work ran. Valid after Done is closed.
func (t *Task) Reason() RunReason {
	return t.reason
}

// Err is ErrSchedulerClosed for work scheduled after Close, otherwise nil.
func (t *Task) Err() error {
	return t.err
}

// Scheduler defers work until the host has been quiet for a while, but
// never past each task's timeout. The host reports activity (input, frames,
// navigation) with Touch.
//
// Each task waits and runs on its own, so a slow work item never holds
// another past its timeout. Tasks are independent; Schedule does no
// de-duplication.
type Scheduler struct {
	quiet        time.Duration
	lastActivity atomic.Int64 // unix nanoseconds
	pending      atomic.Int64

	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
	stop   chan struct{}
}

// NewScheduler creates a scheduler that treats quiet of no host activity as idle.
func NewScheduler(quiet time.Duration) *Scheduler {
	s := &Scheduler{
		quiet: quiet,
		stop:  make(chan struct{}),
	}
	s.Touch()
	return s
}

// Touch records host activity, pushing idle work back.
func (s *Scheduler) Touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int64 {
	return s.pending.Load()
}

// Schedule queues work to run when the host is idle, and no later than
// timeout from now.
func (s *Scheduler) Schedule(work func(), timeout time.Duration) *Task {
	t := &Task{done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		t.err = ErrSchedulerClosed
		close(t.done)
		return t
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.pending.Inc()
	go s.wait(t, work, timeout)
	return t
}

// Close stops accepting work, runs everything still waiting, and returns
// once all of it has finished.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.stop)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) idleIn() time.Duration {
	since := time.Since(time.Unix(0, s.lastActivity.Load()))
	return s.quiet - since
}

func (s *Scheduler) wait(t *Task, work func(), timeout time.Duration) {
	defer s.wg.Done()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		remaining := s.idleIn()
		if remaining <= 0 {
			s.execute(t, work, RanIdle)
			return
		}

		idle := time.NewTimer(remaining)
		select {
		case <-idle.C:
			// Activity may have happened meanwhile; check again.
		case <-deadline.C:
			idle.Stop()
			s.execute(t, work, RanTimeout)
			return
		case <-s.stop:
			idle.Stop()
			s.execute(t, work, RanOnClose)
			return
		}
	}
}

func (s *Scheduler) execute(t *Task, work func(), reason RunReason) {
	defer close(t.done)
	defer s.pending.Dec()

	t.reason = reason

	defer func() {
		if r := recover(); r != nil {
			internal.GetInternalLogger().Error("Idle work panicked", "panic", r, "reason", reason.String())
		}
	}()

	work()
}
