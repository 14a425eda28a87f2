// Rover simulator: runs the full control loop against the simulated board.
// By default a scripted host drives the session over an in-memory pipe; with
// -pty the host link is exposed on a real PTY (via socat) so you can talk to
// the simulated rover from a terminal. The front sensor sweeps toward an
// obstacle so the avoidance policy fires.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"SonicRover/internal/device"
	"SonicRover/internal/hal"
	"SonicRover/internal/model"
	"SonicRover/internal/pilot"
	"SonicRover/internal/util"
)

// cm converts a distance to the echo pulse width the sonar would report.
func cm(distance float64) time.Duration {
	us := distance * 2 / 0.0343
	return time.Duration(us * float64(time.Microsecond))
}

func main() {
	util.SetupLogger()

	cycles := flag.Int("cycles", 60, "control cycles to run")
	pty := flag.String("pty", "", "expose the host link on this PTY path (requires socat)")
	flag.Parse()

	board := hal.NewSimBoard()
	if err := board.Setup(); err != nil {
		log.Fatalf("board setup: %v", err)
	}

	// approach an obstacle head on: clear, then inside the 20 cm threshold
	board.Front.Script(
		cm(80), cm(60), cm(40), cm(25),
		cm(15), cm(15), // obstacle: expect halt + held turn
		cm(90), // clear again after the turn
	)
	board.Left.Script(cm(45))
	board.Right.Script(cm(12))

	var dev device.Device
	var pipe *device.PipeDevice
	if *pty != "" {
		mgr := util.NewSocatManager()
		roverEnd := *pty + ".rover"
		if err := mgr.CreatePair(roverEnd, *pty); err != nil {
			log.Fatalf("create pty pair: %v", err)
		}
		defer mgr.Cleanup()
		time.Sleep(300 * time.Millisecond) // give socat time to create the links

		sd, err := device.NewSerialDevice(roverEnd, 115200)
		if err != nil {
			log.Fatalf("open rover end of pty: %v", err)
		}
		dev = sd
		log.Printf("[sim] host link available on %s", *pty)
	} else {
		pipe = device.NewPipeDevice()
		dev = pipe
	}

	commands := make(chan string, 16)
	stop := make(chan struct{})
	go device.ReadLines(dev, commands, stop)

	clock := hal.WallClock{}
	pol, _ := pilot.NewPolarityConfig(1, 1)
	motors := pilot.NewMotorActuator(board, pol)
	arbiter := pilot.NewArbiter(motors, clock, 20, 100*time.Millisecond, 400*time.Millisecond)

	loop := &pilot.Loop{
		RoverID:    "SIM_ROVER",
		Sensors:    pilot.NewSensorArray(board, 30*time.Millisecond),
		Arbiter:    arbiter,
		Dev:        dev,
		Commands:   commands,
		Clock:      clock,
		PollEvery:  50 * time.Millisecond,
		CycleDelay: 40 * time.Millisecond,
		OnFrame: func(f model.TelemetryFrame) {
			fmt.Printf("cycle: front=%7.2f left=%7.2f right=%7.2f mode=%-6s wheels=%s\n",
				f.Front, f.Left, f.Right, f.Mode, wheelWord(board))
		},
	}

	// scripted host session on the other end of the pipe
	if pipe != nil {
		go func() {
			time.Sleep(1200 * time.Millisecond)
			for _, line := range []string{"manual", `{"action":"backward"}`, "stop", "auto"} {
				pipe.Inject(line)
				log.Printf("[host] sent: %s", line)
				time.Sleep(400 * time.Millisecond)
			}
		}()
	}

	for i := 0; i < *cycles; i++ {
		loop.RunOnce()
		clock.Sleep(40 * time.Millisecond)
	}
	close(stop)
	_ = dev.Close()

	if pipe != nil {
		for _, line := range pipe.Sent() {
			if len(line) > 0 && line[0] != 'T' {
				log.Printf("[rover] ack: %s", line)
			}
		}
	}
}

// wheelWord names the motion the four direction lines currently encode.
func wheelWord(b *hal.SimBoard) string {
	lf, lr := b.LF.Level(), b.LR.Level()
	rf, rr := b.RF.Level(), b.RR.Level()
	switch {
	case lf && rf:
		return "forward"
	case lr && rr:
		return "backward"
	case lr && rf:
		return "spin-left"
	case lf && rr:
		return "spin-right"
	default:
		return "braked"
	}
}
