package pilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"SonicRover/internal/hal"
)

func TestMeasureConvertsEchoWidth(t *testing.T) {
	rf := &hal.SimRangeFinder{}
	rf.Script(2000 * time.Microsecond)
	s := NewDistanceSampler(rf, 30*time.Millisecond)

	// 2000 us * 0.0343 cm/us, halved for the round trip
	assert.InDelta(t, 34.3, s.Measure(), 0.001)
}

func TestMeasureTimeoutReturnsSentinel(t *testing.T) {
	rf := &hal.SimRangeFinder{} // empty script: permanent timeout
	s := NewDistanceSampler(rf, 30*time.Millisecond)

	for i := 0; i < 5; i++ {
		d := s.Measure()
		assert.Equal(t, OutOfRange, d)
		assert.Positive(t, d)
	}
}

func TestSampleOrderAndScripts(t *testing.T) {
	b := hal.NewSimBoard()
	b.Front.Script(2000 * time.Microsecond)
	b.Left.Script(-1) // no echo
	b.Right.Script(1000 * time.Microsecond)

	arr := NewSensorArray(b, 30*time.Millisecond)
	front, left, right := arr.Sample()

	assert.InDelta(t, 34.3, front, 0.001)
	assert.Equal(t, OutOfRange, left)
	assert.InDelta(t, 17.15, right, 0.001)
}
