package pilot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModeWords(t *testing.T) {
	for _, tc := range []struct {
		line string
		mode Mode
	}{
		{"auto", ModeAutonomous},
		{"AUTO", ModeAutonomous},
		{"  Auto \n", ModeAutonomous},
		{"manual", ModeManual},
		{"MANUAL", ModeManual},
	} {
		cmd := Normalize(tc.line)
		assert.Equal(t, CommandMode, cmd.Kind, "line %q", tc.line)
		assert.Equal(t, tc.mode, cmd.Mode, "line %q", tc.line)
	}
}

func TestNormalizeStructuredLine(t *testing.T) {
	for _, tc := range []struct {
		line   string
		action Action
	}{
		{`{"action":"forward"}`, ActionForward},
		{`{"action":"backward"}`, ActionBackward},
		{`{"action":"left"}`, ActionTurnLeft},
		{`{"action":"right"}`, ActionTurnRight},
		{`{"action":"stop"}`, ActionStop},
		{`{"mode":"manual","action":"forward"}`, ActionForward},
		{`{ "action" : "stop" , "extra": 1 }`, ActionStop},
	} {
		cmd := Normalize(tc.line)
		assert.Equal(t, CommandAction, cmd.Kind, "line %q", tc.line)
		assert.Equal(t, tc.action, cmd.Action, "line %q", tc.line)
	}
}

// A malformed structured line must fall through to keyword matching instead
// of failing outright.
func TestNormalizeMalformedStructureFallsThrough(t *testing.T) {
	cmd := Normalize(`{"action": forward}`) // missing quotes around value
	assert.Equal(t, CommandAction, cmd.Kind)
	assert.Equal(t, ActionForward, cmd.Action)

	cmd = Normalize(`{"verb":"stop"}`) // no action key, but keyword present
	assert.Equal(t, CommandAction, cmd.Kind)
	assert.Equal(t, ActionStop, cmd.Action)

	cmd = Normalize(`{"verb":"spin"}`) // nothing recognizable at all
	assert.Equal(t, CommandNone, cmd.Kind)
}

func TestNormalizeKeywordContainment(t *testing.T) {
	for _, tc := range []struct {
		line   string
		action Action
	}{
		{"please go forward", ActionForward},
		{"FORWARD", ActionForward},
		{"come back now", ActionBackward},
		{"left", ActionTurnLeft},
		{"bear Right", ActionTurnRight},
		{"stop!", ActionStop},
	} {
		cmd := Normalize(tc.line)
		assert.Equal(t, CommandAction, cmd.Kind, "line %q", tc.line)
		assert.Equal(t, tc.action, cmd.Action, "line %q", tc.line)
	}
}

// Keyword priority is fixed: forward, back, left, right, stop. The first
// keyword found wins even when several are present.
func TestNormalizeKeywordPriority(t *testing.T) {
	cmd := Normalize("turn back left")
	assert.Equal(t, ActionBackward, cmd.Action)

	cmd = Normalize("stop turning left")
	assert.Equal(t, ActionTurnLeft, cmd.Action)

	cmd = Normalize("right then forward")
	assert.Equal(t, ActionForward, cmd.Action)
}

func TestNormalizeUnrecognized(t *testing.T) {
	for _, line := range []string{"", "   ", "\n", "hello rover", "faster"} {
		cmd := Normalize(line)
		assert.Equal(t, CommandNone, cmd.Kind, "line %q", line)
	}
}
