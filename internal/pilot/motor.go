package pilot

import (
	"fmt"

	"SonicRover/internal/hal"
)

// PolarityConfig holds the fixed per-wheel wiring signs, set once at startup
// and read-only afterwards. A -1 wheel has its forward/reverse lines swapped
// in hardware; the sign makes a single "forward" intent drive both wheels in
// the same logical direction regardless.
type PolarityConfig struct {
	Left  int
	Right int
}

// NewPolarityConfig validates that both signs are +1 or -1.
func NewPolarityConfig(left, right int) (PolarityConfig, error) {
	if (left != 1 && left != -1) || (right != 1 && right != -1) {
		return PolarityConfig{}, fmt.Errorf("polarity signs must be +1 or -1, got %d/%d", left, right)
	}
	return PolarityConfig{Left: left, Right: right}, nil
}

// MotorActuator maps an Action onto the four direction lines of the two
// wheel drivers. Binary direction only: no ramping, no speed control. The
// enable lines are asserted once by Board.Setup, outside the loop.
type MotorActuator struct {
	leftFwd, leftRev   hal.Pin
	rightFwd, rightRev hal.Pin
	pol                PolarityConfig
}

// NewMotorActuator wires the actuator to a board's direction lines.
func NewMotorActuator(b hal.Board, pol PolarityConfig) *MotorActuator {
	return &MotorActuator{
		leftFwd:  b.LeftForward(),
		leftRev:  b.LeftReverse(),
		rightFwd: b.RightForward(),
		rightRev: b.RightReverse(),
		pol:      pol,
	}
}

// Apply drives the direction lines for the given action. Stop (and Unknown,
// which is treated as stop) clears all four lines: brake, not coast.
func (m *MotorActuator) Apply(a Action) {
	left, right := wheelIntents(a)
	setWheel(m.leftFwd, m.leftRev, left*m.pol.Left)
	setWheel(m.rightFwd, m.rightRev, right*m.pol.Right)
}

// wheelIntents returns the logical spin per wheel: +1 forward, -1 reverse,
// 0 halt.
func wheelIntents(a Action) (left, right int) {
	switch a {
	case ActionForward:
		return 1, 1
	case ActionBackward:
		return -1, -1
	case ActionTurnLeft:
		return -1, 1
	case ActionTurnRight:
		return 1, -1
	default:
		return 0, 0
	}
}

func setWheel(fwd, rev hal.Pin, spin int) {
	fwd.Set(spin > 0)
	rev.Set(spin < 0)
}
