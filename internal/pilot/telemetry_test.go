package pilot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTelemetryFormat(t *testing.T) {
	assert.Equal(t, "T|F:12.34|L:999.00|R:0.00", EncodeTelemetry(12.34, 999, 0))
	assert.Equal(t, "T|F:20.00|L:15.50|R:7.25", EncodeTelemetry(20, 15.5, 7.25))
}

func TestDecodeTelemetry(t *testing.T) {
	front, left, right, err := DecodeTelemetry("T|F:12.34|L:999.00|R:0.00\n")
	require.NoError(t, err)
	assert.Equal(t, 12.34, front)
	assert.Equal(t, 999.0, left)
	assert.Equal(t, 0.0, right)
}

func TestDecodeTelemetryRejectsOtherLines(t *testing.T) {
	for _, line := range []string{"", "MODE:auto", "T|F:x|L:1.00|R:1.00", "T|F:1.00|L:1.00", "X|F:1.00|L:1.00|R:1.00"} {
		_, _, _, err := DecodeTelemetry(line)
		assert.Error(t, err, "line %q", line)
	}
}
