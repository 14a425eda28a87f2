package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeDeviceRoundTrip(t *testing.T) {
	p := NewPipeDevice()
	defer func() { _ = p.Close() }()

	p.Inject("manual")
	line, err := p.ReadLine(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "manual", line)

	require.NoError(t, p.WriteLine("MODE:manual"))
	assert.Equal(t, []string{"MODE:manual"}, p.Sent())
}

func TestPipeDeviceReadTimeout(t *testing.T) {
	p := NewPipeDevice()
	defer func() { _ = p.Close() }()

	_, err := p.ReadLine(5 * time.Millisecond)
	assert.Error(t, err)
}

func TestPipeDeviceClose(t *testing.T) {
	p := NewPipeDevice()
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "close is idempotent")

	_, err := p.ReadLine(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.WriteLine("x"), ErrClosed)
}

func TestReadLinesFramesAndFilters(t *testing.T) {
	p := NewPipeDevice()
	out := make(chan string, 8)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		ReadLines(p, out, stop)
		close(done)
	}()

	p.Inject("  forward \n")
	p.Inject("")
	p.Inject("stop")

	assert.Equal(t, "forward", <-out)
	assert.Equal(t, "stop", <-out, "blank lines are dropped")

	_ = p.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReadLines did not exit on device close")
	}
	close(stop)
}
