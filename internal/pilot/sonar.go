package pilot

import (
	"time"

	"SonicRover/internal/hal"
)

// OutOfRange is the sentinel distance reported when no echo arrives within
// the timeout window. A missed echo and a genuinely clear path are
// indistinguishable and treated identically.
const OutOfRange = 999.0

// speed of sound at room temperature, halved for the round trip
const cmPerMicrosecond = 0.0343

// DistanceSampler converts one pulse primitive invocation into a calibrated
// distance in centimeters.
type DistanceSampler struct {
	rf      hal.RangeFinder
	timeout time.Duration
}

// NewDistanceSampler wraps one sensor channel with the given echo timeout.
func NewDistanceSampler(rf hal.RangeFinder, timeout time.Duration) *DistanceSampler {
	return &DistanceSampler{rf: rf, timeout: timeout}
}

// Measure fires the trigger and converts the echo width to centimeters.
// Timeout returns OutOfRange, never an error and never a retry.
func (s *DistanceSampler) Measure() float64 {
	width, ok := s.rf.EchoPulse(s.timeout)
	if !ok {
		return OutOfRange
	}
	us := float64(width) / float64(time.Microsecond)
	return us * cmPerMicrosecond / 2
}

// SensorArray groups the three fixed channels of the rover.
type SensorArray struct {
	Front *DistanceSampler
	Left  *DistanceSampler
	Right *DistanceSampler
}

// NewSensorArray builds the three samplers from a board's sensor channels.
func NewSensorArray(b hal.Board, timeout time.Duration) *SensorArray {
	return &SensorArray{
		Front: NewDistanceSampler(b.FrontSensor(), timeout),
		Left:  NewDistanceSampler(b.LeftSensor(), timeout),
		Right: NewDistanceSampler(b.RightSensor(), timeout),
	}
}

// Sample measures all three channels in the fixed front, left, right order.
// Each channel blocks up to the timeout, so worst case is three timeouts.
func (a *SensorArray) Sample() (front, left, right float64) {
	return a.Front.Measure(), a.Left.Measure(), a.Right.Measure()
}
