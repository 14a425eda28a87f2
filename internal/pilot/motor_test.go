package pilot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SonicRover/internal/hal"
)

func TestNewPolarityConfigRejectsBadSigns(t *testing.T) {
	for _, bad := range [][2]int{{0, 1}, {1, 0}, {2, 1}, {1, -2}} {
		_, err := NewPolarityConfig(bad[0], bad[1])
		assert.Error(t, err, "signs %v", bad)
	}
	_, err := NewPolarityConfig(-1, 1)
	assert.NoError(t, err)
}

// For every sign combination, Forward must spin both wheels in the same
// logical direction: the physical pair inverts with the configured sign.
func TestForwardPolarityInvariant(t *testing.T) {
	for _, lp := range []int{1, -1} {
		for _, rp := range []int{1, -1} {
			t.Run(fmt.Sprintf("left%+d_right%+d", lp, rp), func(t *testing.T) {
				b := hal.NewSimBoard()
				pol, err := NewPolarityConfig(lp, rp)
				require.NoError(t, err)
				m := NewMotorActuator(b, pol)

				m.Apply(ActionForward)

				assert.Equal(t, lp == 1, b.LF.Level())
				assert.Equal(t, lp == -1, b.LR.Level())
				assert.Equal(t, rp == 1, b.RF.Level())
				assert.Equal(t, rp == -1, b.RR.Level())

				// exactly one line high per wheel
				assert.NotEqual(t, b.LF.Level(), b.LR.Level())
				assert.NotEqual(t, b.RF.Level(), b.RR.Level())
			})
		}
	}
}

func TestApplyActionMapping(t *testing.T) {
	b := hal.NewSimBoard()
	pol, _ := NewPolarityConfig(1, 1)
	m := NewMotorActuator(b, pol)

	levels := func() [4]bool {
		return [4]bool{b.LF.Level(), b.LR.Level(), b.RF.Level(), b.RR.Level()}
	}

	m.Apply(ActionForward)
	assert.Equal(t, [4]bool{true, false, true, false}, levels())

	m.Apply(ActionBackward)
	assert.Equal(t, [4]bool{false, true, false, true}, levels())

	m.Apply(ActionTurnLeft)
	assert.Equal(t, [4]bool{false, true, true, false}, levels())

	m.Apply(ActionTurnRight)
	assert.Equal(t, [4]bool{true, false, false, true}, levels())

	m.Apply(ActionStop)
	assert.Equal(t, [4]bool{false, false, false, false}, levels())
}

// Stop is a brake: all four lines cleared, whatever the polarity.
func TestStopClearsAllLines(t *testing.T) {
	for _, lp := range []int{1, -1} {
		for _, rp := range []int{1, -1} {
			b := hal.NewSimBoard()
			pol, _ := NewPolarityConfig(lp, rp)
			m := NewMotorActuator(b, pol)

			m.Apply(ActionForward)
			m.Apply(ActionStop)

			assert.False(t, b.LF.Level())
			assert.False(t, b.LR.Level())
			assert.False(t, b.RF.Level())
			assert.False(t, b.RR.Level())
		}
	}
}

func TestUnknownActionHalts(t *testing.T) {
	b := hal.NewSimBoard()
	pol, _ := NewPolarityConfig(1, 1)
	m := NewMotorActuator(b, pol)

	m.Apply(ActionForward)
	m.Apply(ActionUnknown)

	assert.False(t, b.LF.Level())
	assert.False(t, b.RF.Level())
}
