package pilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"SonicRover/internal/hal"
)

func newTestArbiter(t *testing.T) (*Arbiter, *hal.SimBoard) {
	t.Helper()
	b := hal.NewSimBoard()
	pol, _ := NewPolarityConfig(1, 1)
	m := NewMotorActuator(b, pol)
	a := NewArbiter(m, b.Clk, 20, 100*time.Millisecond, 400*time.Millisecond)
	return a, b
}

func levels(b *hal.SimBoard) [4]bool {
	return [4]bool{b.LF.Level(), b.LR.Level(), b.RF.Level(), b.RR.Level()}
}

func TestAutonomousClearPathDrivesForward(t *testing.T) {
	a, b := newTestArbiter(t)

	a.Decide(25, 5, 5)

	assert.Equal(t, [4]bool{true, false, true, false}, levels(b))
	assert.Empty(t, b.Clk.Sleeps, "no timed hold on a clear path")
}

func TestAutonomousObstacleTurnsTowardClearSide(t *testing.T) {
	a, b := newTestArbiter(t)

	a.Decide(15, 40, 10)

	// halt first, then a held left turn
	assert.Equal(t, [4]bool{false, true, true, false}, levels(b))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 400 * time.Millisecond}, b.Clk.Sleeps)

	// the halt happened before the turn: left-forward history is low, low
	assert.Equal(t, []bool{false, false}, b.LF.History()[:2])
}

func TestAutonomousTieBreakFavorsRight(t *testing.T) {
	a, b := newTestArbiter(t)

	a.Decide(15, 10, 10)

	assert.Equal(t, [4]bool{true, false, false, true}, levels(b))
}

func TestAutonomousRightStrictlyClearerTurnsRight(t *testing.T) {
	a, b := newTestArbiter(t)

	a.Decide(15, 10, 40)

	assert.Equal(t, [4]bool{true, false, false, true}, levels(b))
}

// The threshold is strict: exactly 20 cm counts as clear.
func TestAutonomousThresholdBoundary(t *testing.T) {
	a, b := newTestArbiter(t)

	a.Decide(20, 5, 5)

	assert.Equal(t, [4]bool{true, false, true, false}, levels(b))
}

func TestManualOverrideIgnoresSensors(t *testing.T) {
	a, b := newTestArbiter(t)

	assert.Equal(t, "MODE:manual", a.HandleCommand(Normalize("manual")))
	assert.Equal(t, "REMOTE_ACTION:forward", a.HandleCommand(Normalize("forward")))
	assert.Equal(t, ModeManual, a.Mode())

	// obstacle dead ahead, manual forward still wins
	a.Decide(5, 999, 999)
	assert.Equal(t, [4]bool{true, false, true, false}, levels(b))
}

func TestActionAloneForcesManualMode(t *testing.T) {
	a, b := newTestArbiter(t)

	ack := a.HandleCommand(Normalize(`{"action":"stop"}`))
	assert.Equal(t, "REMOTE_ACTION:stop", ack)
	assert.Equal(t, ModeManual, a.Mode())
	assert.Equal(t, ActionStop, a.Action())

	a.Decide(25, 5, 5)
	assert.Equal(t, [4]bool{false, false, false, false}, levels(b))
}

// A manual stop keeps manual authority: the rover stays halted until the
// host explicitly sends "auto".
func TestStopStaysInManualUntilAuto(t *testing.T) {
	a, b := newTestArbiter(t)

	a.HandleCommand(Normalize("forward"))
	a.HandleCommand(Normalize("stop"))
	assert.Equal(t, ModeManual, a.Mode())

	for i := 0; i < 3; i++ {
		a.Decide(999, 999, 999)
		assert.Equal(t, [4]bool{false, false, false, false}, levels(b))
	}

	assert.Equal(t, "MODE:auto", a.HandleCommand(Normalize("auto")))
	a.Decide(999, 999, 999)
	assert.Equal(t, [4]bool{true, false, true, false}, levels(b))
}

// Unrecognized lines never change mode or action, no matter how often they
// repeat.
func TestUnrecognizedLineIsIdempotent(t *testing.T) {
	a, _ := newTestArbiter(t)

	a.HandleCommand(Normalize("manual"))
	a.HandleCommand(Normalize("forward"))

	for i := 0; i < 10; i++ {
		ack := a.HandleCommand(Normalize("gibberish line"))
		assert.Equal(t, "", ack)
		assert.Equal(t, ModeManual, a.Mode())
		assert.Equal(t, ActionForward, a.Action())
	}
}

func TestModeChangeDoesNotTouchAction(t *testing.T) {
	a, _ := newTestArbiter(t)

	a.HandleCommand(Normalize("backward"))
	a.HandleCommand(Normalize("auto"))

	assert.Equal(t, ModeAutonomous, a.Mode())
	assert.Equal(t, ActionBackward, a.Action(), "action survives the mode switch")
}
