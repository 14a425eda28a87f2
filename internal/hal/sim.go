package hal

import (
	"sync"
	"time"
)

func init() {
	// the registered backend runs in real time; tests construct their own
	// SimBoard and drive the manual clock directly
	Register("sim", func() (Board, error) {
		b := NewSimBoard()
		b.UseWallClock = true
		return b, nil
	})
}

// SimPin records every level written to it.
type SimPin struct {
	mu      sync.Mutex
	level   bool
	history []bool
}

// Set drives the simulated line and appends to its history.
func (p *SimPin) Set(high bool) {
	p.mu.Lock()
	p.level = high
	p.history = append(p.history, high)
	p.mu.Unlock()
}

// Level returns the current line level.
func (p *SimPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// History returns a copy of every level ever written.
func (p *SimPin) History() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bool, len(p.history))
	copy(out, p.history)
	return out
}

// SimRangeFinder replays a scripted sequence of echo pulse widths. A negative
// width means "no echo": the call reports a timeout instead.
type SimRangeFinder struct {
	mu     sync.Mutex
	script []time.Duration
	next   int
}

// Script replaces the pulse sequence and rewinds the cursor. When the script
// runs out the last entry repeats, so a one-entry script is a constant sensor.
func (r *SimRangeFinder) Script(widths ...time.Duration) {
	r.mu.Lock()
	r.script = widths
	r.next = 0
	r.mu.Unlock()
}

// EchoPulse pops the next scripted width. An empty script behaves like a
// sensor pointed at open space: permanent timeout.
func (r *SimRangeFinder) EchoPulse(timeout time.Duration) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.script) == 0 {
		return 0, false
	}
	w := r.script[r.next]
	if r.next < len(r.script)-1 {
		r.next++
	}
	if w < 0 {
		return 0, false
	}
	return w, true
}

// SimClock is a manual clock: Sleep advances it instantly and records the
// requested duration, so timed turns run at test speed.
type SimClock struct {
	mu     sync.Mutex
	now    time.Time
	Sleeps []time.Duration
}

// NewSimClock starts the clock at an arbitrary fixed instant.
func NewSimClock() *SimClock {
	return &SimClock{now: time.Unix(0, 0)}
}

func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.Sleeps = append(c.Sleeps, d)
	c.mu.Unlock()
}

// Advance moves the clock forward without recording a sleep.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// SimBoard is the in-memory Board used by the simulation binary and tests.
type SimBoard struct {
	LF, LR, RF, RR *SimPin
	Front          *SimRangeFinder
	Left           *SimRangeFinder
	Right          *SimRangeFinder
	Clk            *SimClock

	// UseWallClock makes Clock() return real time instead of the manual
	// SimClock, so a simulated rover still runs at hardware pace.
	UseWallClock bool

	enables [2]*SimPin
}

// NewSimBoard returns a board with all lines low and all sensors silent.
func NewSimBoard() *SimBoard {
	return &SimBoard{
		LF: &SimPin{}, LR: &SimPin{}, RF: &SimPin{}, RR: &SimPin{},
		Front: &SimRangeFinder{}, Left: &SimRangeFinder{}, Right: &SimRangeFinder{},
		Clk:     NewSimClock(),
		enables: [2]*SimPin{{}, {}},
	}
}

// Setup asserts both enable lines, mirroring the one-time hardware init.
func (b *SimBoard) Setup() error {
	b.enables[0].Set(true)
	b.enables[1].Set(true)
	return nil
}

// EnablesHigh reports whether both enable lines are asserted.
func (b *SimBoard) EnablesHigh() bool {
	return b.enables[0].Level() && b.enables[1].Level()
}

func (b *SimBoard) LeftForward() Pin { return b.LF }
func (b *SimBoard) LeftReverse() Pin { return b.LR }
func (b *SimBoard) RightForward() Pin { return b.RF }
func (b *SimBoard) RightReverse() Pin { return b.RR }
func (b *SimBoard) FrontSensor() RangeFinder { return b.Front }
func (b *SimBoard) LeftSensor() RangeFinder { return b.Left }
func (b *SimBoard) RightSensor() RangeFinder { return b.Right }
func (b *SimBoard) Clock() Clock {
	if b.UseWallClock {
		return WallClock{}
	}
	return b.Clk
}
