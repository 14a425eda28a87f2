// Package pilot contains the motion-decision core of the rover: command
// normalization, distance sampling, the mode state machine, the polarity
// translation onto the motor driver, and the control loop that sequences
// them at a fixed cadence.
package pilot

// Action is a normalized motion intent.
type Action int

const (
	ActionUnknown Action = iota
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionStop
)

// String returns the wire word for an Action, the same vocabulary the host
// sends (turns are "left"/"right", not "turnleft").
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionTurnLeft:
		return "left"
	case ActionTurnRight:
		return "right"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Mode is the control authority: autonomous avoidance or manual override.
type Mode int

const (
	ModeAutonomous Mode = iota
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "auto"
}
