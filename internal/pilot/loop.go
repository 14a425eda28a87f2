package pilot

import (
	"time"

	"SonicRover/internal/device"
	"SonicRover/internal/hal"
	"SonicRover/internal/model"
)

// Loop sequences one control cycle: sense, emit telemetry, poll the command
// channel on its own cadence, decide, sleep. It is the only concurrency unit
// touching arbiter state; the command reader goroutine merely feeds the
// Commands channel with framed lines.
type Loop struct {
	RoverID  string
	Sensors  *SensorArray
	Arbiter  *Arbiter
	Dev      device.Device
	Commands <-chan string
	Clock    hal.Clock

	PollEvery  time.Duration
	CycleDelay time.Duration

	// OnFrame, when set, receives the finished frame of every cycle. The
	// rover hangs the hub forwarder and the LoRaWAN uplink off it.
	OnFrame func(model.TelemetryFrame)

	lastPoll time.Time
	polled   bool
}

// RunOnce performs a single control cycle.
func (l *Loop) RunOnce() {
	front, left, right := l.Sensors.Sample()

	if l.Dev != nil {
		_ = l.Dev.WriteLine(EncodeTelemetry(front, left, right))
	}

	now := l.Clock.Now()
	if !l.polled || now.Sub(l.lastPoll) >= l.PollEvery {
		l.polled = true
		l.lastPoll = now
		l.drainCommands()
	}

	l.Arbiter.Decide(front, left, right)

	if l.OnFrame != nil {
		l.OnFrame(model.TelemetryFrame{
			RoverID:   l.RoverID,
			Front:     front,
			Left:      left,
			Right:     right,
			Mode:      l.Arbiter.Mode().String(),
			Action:    l.Arbiter.Action().String(),
			Timestamp: l.Clock.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// drainCommands processes every buffered line in arrival order. The last
// action wins; each recognized line still gets its own acknowledgement.
func (l *Loop) drainCommands() {
	if l.Commands == nil {
		return
	}
	for {
		select {
		case line, ok := <-l.Commands:
			if !ok {
				return
			}
			ack := l.Arbiter.HandleCommand(Normalize(line))
			if ack != "" && l.Dev != nil {
				_ = l.Dev.WriteLine(ack)
			}
		default:
			return
		}
	}
}

// Run cycles until stop is closed, sleeping the fixed inter-cycle delay
// between iterations.
func (l *Loop) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		l.RunOnce()
		l.Clock.Sleep(l.CycleDelay)
	}
}
