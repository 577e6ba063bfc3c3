package preload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func waitTask(t *testing.T, task *Task, within time.Duration) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(within):
		t.Fatalf("task did not run within %s", within)
	}
}

func TestScheduleRunsWhenIdle(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	defer s.Close()

	var ran atomic.Bool
	task := s.Schedule(func() { ran.Store(true) }, time.Minute)

	waitTask(t, task, time.Second)
	assert.True(t, ran.Load())
	assert.Equal(t, RanIdle, task.Reason())
	assert.NoError(t, task.Err())
	assert.Equal(t, int64(0), s.Pending())
}

func TestScheduleTimeoutBeatsContinuousActivity(t *testing.T) {
	s := NewScheduler(time.Hour)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Touch()
			}
		}
	}()

	start := time.Now()
	task := s.Schedule(func() {}, 30*time.Millisecond)

	waitTask(t, task, time.Second)
	assert.Equal(t, RanTimeout, task.Reason())
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSlowWorkDoesNotDelayOtherTasks(t *testing.T) {
	s := NewScheduler(time.Millisecond)

	release := make(chan struct{})
	slow := s.Schedule(func() { <-release }, time.Millisecond)

	fast := s.Schedule(func() {}, 30*time.Millisecond)
	waitTask(t, fast, time.Second)

	select {
	case <-slow.Done():
		t.Fatal("slow work finished before it was released")
	default:
	}

	close(release)
	s.Close()
	waitTask(t, slow, time.Second)
}

func TestScheduleDoesNotDeduplicate(t *testing.T) {
	s := NewScheduler(time.Millisecond)

	var runs atomic.Int64
	for i := 0; i < 5; i++ {
		s.Schedule(func() { runs.Inc() }, time.Second)
	}
	s.Close()

	assert.Equal(t, int64(5), runs.Load())
}

func TestCloseRunsWaitingWork(t *testing.T) {
	s := NewScheduler(time.Hour)

	var ran atomic.Bool
	task := s.Schedule(func() { ran.Store(true) }, time.Hour)
	s.Close()

	require.True(t, ran.Load())
	assert.Equal(t, RanOnClose, task.Reason())

	late := s.Schedule(func() { t.Error("work scheduled after close must not run") }, 0)
	waitTask(t, late, time.Second)
	assert.ErrorIs(t, late.Err(), ErrSchedulerClosed)
}

func TestPanickingWorkDoesNotStopScheduler(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	defer s.Close()

	bad := s.Schedule(func() { panic("broken preload") }, time.Second)
	waitTask(t, bad, time.Second)

	var ran atomic.Bool
	good := s.Schedule(func() { ran.Store(true) }, time.Second)
	waitTask(t, good, time.Second)
	assert.True(t, ran.Load())
}
