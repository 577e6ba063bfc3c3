package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type machineFixture struct {
	machine *Machine
	allowed bool
	commits int
	changes []State
}

func newFixture(allowed bool) *machineFixture {
	f := &machineFixture{allowed: allowed}
	f.machine = NewMachine(DefaultConfig(), func() bool { return f.allowed }, func() { f.commits++ })
	f.machine.OnChange(func(s State, _ Signals) { f.changes = append(f.changes, s) })
	return f
}

func TestMachineCommitsFastLongSwipe(t *testing.T) {
	f := newFixture(true)
	t0 := time.Unix(100, 0)

	require.True(t, f.machine.PointerDown(6, t0))
	f.machine.PointerMove(50, t0.Add(40*time.Millisecond))
	f.machine.PointerMove(120, t0.Add(80*time.Millisecond))
	assert.Equal(t, PhaseTracking, f.machine.State().Phase)
	assert.InDelta(t, 114, f.machine.State().DeltaX, 1e-9)

	outcome := f.machine.PointerUp(140, t0.Add(100*time.Millisecond))
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, 1, f.commits)
	assert.Equal(t, State{}, f.machine.State(), "machine is idle after commit")
}

func TestMachineCommitPassesThroughCommitting(t *testing.T) {
	f := newFixture(true)
	var duringCommit Phase
	f.machine = NewMachine(DefaultConfig(), func() bool { return true }, func() {
		duringCommit = f.machine.State().Phase
		f.commits++
	})
	var phases []Phase
	f.machine.OnChange(func(s State, _ Signals) { phases = append(phases, s.Phase) })

	t0 := time.Unix(100, 0)
	require.True(t, f.machine.PointerDown(6, t0))
	f.machine.PointerMove(120, t0.Add(80*time.Millisecond))
	require.Equal(t, OutcomeCommitted, f.machine.PointerUp(140, t0.Add(100*time.Millisecond)))

	assert.Equal(t, PhaseCommitting, duringCommit)
	assert.Equal(t, []Phase{PhaseTracking, PhaseTracking, PhaseCommitting, PhaseIdle}, phases)
	assert.Equal(t, PhaseIdle, f.machine.State().Phase)

	// Nothing left to animate after a commit.
	f.machine.Tick(time.Second)
	assert.Len(t, phases, 4)
}

func TestMachineCancelsSlowDrag(t *testing.T) {
	f := newFixture(true)
	t0 := time.Unix(100, 0)

	require.True(t, f.machine.PointerDown(6, t0))
	f.machine.PointerMove(126, t0.Add(100*time.Millisecond))
	// Finger rests before lifting: release velocity falls to zero.
	outcome := f.machine.PointerUp(126, t0.Add(900*time.Millisecond))

	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Equal(t, 0, f.commits)
	assert.Equal(t, PhaseCancelling, f.machine.State().Phase)

	f.machine.Tick(DefaultConfig().SettleDuration)
	assert.Equal(t, State{}, f.machine.State())
}

func TestMachineIgnoresTouchOutsideEdge(t *testing.T) {
	f := newFixture(true)
	assert.False(t, f.machine.PointerDown(200, time.Now()))
	assert.Equal(t, OutcomeNone, f.machine.PointerUp(400, time.Now()))
	assert.Empty(t, f.changes)
}

func TestMachineChecksPreconditionOnceAtStart(t *testing.T) {
	f := newFixture(false)
	t0 := time.Unix(100, 0)
	assert.False(t, f.machine.PointerDown(4, t0))

	f.allowed = true
	require.True(t, f.machine.PointerDown(4, t0))

	// Losing the precondition mid-gesture does not stop tracking.
	f.allowed = false
	f.machine.PointerMove(100, t0.Add(50*time.Millisecond))
	assert.Equal(t, OutcomeCommitted, f.machine.PointerUp(130, t0.Add(60*time.Millisecond)))
}

func TestMachinePointerLostForcesCancel(t *testing.T) {
	f := newFixture(true)
	t0 := time.Unix(100, 0)

	require.True(t, f.machine.PointerDown(3, t0))
	f.machine.PointerMove(90, t0.Add(20*time.Millisecond))
	f.machine.PointerLost()

	assert.Equal(t, PhaseCancelling, f.machine.State().Phase)
	assert.Equal(t, OutcomeNone, f.machine.PointerUp(150, t0.Add(30*time.Millisecond)))
	assert.False(t, f.machine.PointerDown(3, t0.Add(40*time.Millisecond)), "no new gesture until settled")

	f.machine.Tick(time.Second)
	assert.Equal(t, PhaseIdle, f.machine.State().Phase)
	assert.True(t, f.machine.PointerDown(3, t0.Add(time.Second)))
	assert.Equal(t, 0, f.commits)
}

func TestMachineSignals(t *testing.T) {
	f := newFixture(true)
	t0 := time.Unix(100, 0)

	require.True(t, f.machine.PointerDown(0, t0))
	f.machine.PointerMove(60, t0.Add(10*time.Millisecond))
	assert.InDelta(t, 0.5, f.machine.Signals().Progress, 1e-9)

	f.machine.Reset()
	assert.Equal(t, State{}, f.machine.State())
}
