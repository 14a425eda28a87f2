package pilot

import (
	"time"

	"SonicRover/internal/hal"
)

// Arbiter owns the mode state machine and the per-cycle motion decision.
// Initial state is autonomous with no active action. All access happens from
// the single control loop goroutine, so there is no locking.
type Arbiter struct {
	mode   Mode
	action Action

	motors *MotorActuator
	clock  hal.Clock

	// avoidance tuning
	obstacleCM float64
	settle     time.Duration
	turnHold   time.Duration
}

// NewArbiter builds an arbiter in autonomous mode.
func NewArbiter(motors *MotorActuator, clock hal.Clock, obstacleCM float64, settle, turnHold time.Duration) *Arbiter {
	return &Arbiter{
		mode:       ModeAutonomous,
		action:     ActionStop,
		motors:     motors,
		clock:      clock,
		obstacleCM: obstacleCM,
		settle:     settle,
		turnHold:   turnHold,
	}
}

// Mode returns the current control authority.
func (a *Arbiter) Mode() Mode { return a.mode }

// Action returns the most recently received manual action.
func (a *Arbiter) Action() Action { return a.action }

// HandleCommand applies one normalized command and returns the
// acknowledgement line to send back to the host ("" when nothing changed).
// Any recognized action forces manual mode; that includes stop, which keeps
// the rover halted under manual authority until the host sends "auto".
func (a *Arbiter) HandleCommand(cmd Command) string {
	switch cmd.Kind {
	case CommandMode:
		a.mode = cmd.Mode
		return "MODE:" + cmd.Mode.String()
	case CommandAction:
		a.action = cmd.Action
		a.mode = ModeManual
		return "REMOTE_ACTION:" + cmd.Action.String()
	default:
		return ""
	}
}

// Decide executes one cycle's motion from fresh distances. Manual mode
// replays the last action. Autonomous mode drives forward until the front
// clearance drops below the threshold, then halts, settles, and holds a
// single avoidance turn toward the side with strictly greater clearance.
// A tie falls into the right branch; keep the comparison strict so that
// stays true.
func (a *Arbiter) Decide(front, left, right float64) {
	if a.mode == ModeManual {
		a.motors.Apply(a.action)
		return
	}

	if front < a.obstacleCM {
		a.motors.Apply(ActionStop)
		a.clock.Sleep(a.settle)
		if left > right {
			a.motors.Apply(ActionTurnLeft)
		} else {
			a.motors.Apply(ActionTurnRight)
		}
		a.clock.Sleep(a.turnHold)
		return
	}
	a.motors.Apply(ActionForward)
}
