// Package hal defines the hardware abstraction consumed by the control loop:
// digital output pins for the motor driver, the trigger/echo pulse primitive
// behind each ultrasonic sensor, and a clock for cadence gating and timed
// holds. Real boards implement these interfaces out of tree and register a
// factory; the in-tree SimBoard backs the simulation and the tests.
package hal

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Pin is a single digital output line.
type Pin interface {
	// Set drives the line high (true) or low (false).
	Set(high bool)
}

// RangeFinder is the bounded-wait pulse primitive for one sensor channel.
// A call fires the trigger pulse and waits for the echo.
type RangeFinder interface {
	// EchoPulse returns the echo pulse width. ok is false when no echo
	// arrived within timeout; the width is undefined in that case.
	EchoPulse(timeout time.Duration) (width time.Duration, ok bool)
}

// Clock provides monotonic time and synchronous delays so tests can swap a
// fake in place of the wall clock.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Board bundles every line and sensor channel the rover needs. Setup is
// called once at startup: it configures pin directions and asserts both
// motor enable lines, which stay high for the process lifetime.
type Board interface {
	Setup() error

	// Motor direction lines, one forward/reverse pair per wheel.
	LeftForward() Pin
	LeftReverse() Pin
	RightForward() Pin
	RightReverse() Pin

	// Sensor channels.
	FrontSensor() RangeFinder
	LeftSensor() RangeFinder
	RightSensor() RangeFinder

	Clock() Clock
}

var (
	boardsMu sync.Mutex
	boards   = map[string]func() (Board, error){}
)

// Register makes a board factory available under the given name.
func Register(name string, factory func() (Board, error)) {
	boardsMu.Lock()
	defer boardsMu.Unlock()
	boards[name] = factory
}

// Open constructs the board registered under name.
func Open(name string) (Board, error) {
	boardsMu.Lock()
	factory, ok := boards[name]
	boardsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown board %q (registered: %v)", name, Names())
	}
	return factory()
}

// Names lists the registered board names.
func Names() []string {
	boardsMu.Lock()
	defer boardsMu.Unlock()
	names := make([]string, 0, len(boards))
	for n := range boards {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WallClock implements Clock with the time package.
type WallClock struct{}

func (WallClock) Now() time.Time        { return time.Now() }
func (WallClock) Sleep(d time.Duration) { time.Sleep(d) }
