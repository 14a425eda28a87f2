// Package core contains the runtime orchestration layer: it wires the board,
// the serial link and the pilot together and manages their lifecycle.
package core

import (
	"fmt"
	"log"
	"sync"
	"time"

	"SonicRover/internal/device"
	"SonicRover/internal/hal"
	"SonicRover/internal/model"
	"SonicRover/internal/pilot"
)

// Rover couples one board and one command link with a control loop. The loop
// goroutine is the only writer of arbiter state; a second goroutine pumps
// framed lines from the device into the loop's command channel.
type Rover struct {
	ID    string
	Dev   device.Device
	Board hal.Board
	Loop  *pilot.Loop

	motors *pilot.MotorActuator
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewRover builds the pilot stack from the given config on the given board.
// dev may be nil; the rover then runs autonomous-only with no host link.
func NewRover(cfg model.RoverConfig, board hal.Board, dev device.Device) (*Rover, error) {
	pol, err := pilot.NewPolarityConfig(cfg.LeftPolarity, cfg.RightPolarity)
	if err != nil {
		return nil, fmt.Errorf("rover %s: %w", cfg.ID, err)
	}

	clock := board.Clock()
	motors := pilot.NewMotorActuator(board, pol)
	arbiter := pilot.NewArbiter(
		motors,
		clock,
		cfg.ObstacleCM,
		time.Duration(cfg.SettleMs)*time.Millisecond,
		time.Duration(cfg.TurnHoldMs)*time.Millisecond,
	)

	r := &Rover{
		ID:     cfg.ID,
		Dev:    dev,
		Board:  board,
		motors: motors,
		stop:   make(chan struct{}),
	}

	commands := make(chan string, 16)
	r.Loop = &pilot.Loop{
		RoverID:    cfg.ID,
		Sensors:    pilot.NewSensorArray(board, time.Duration(cfg.EchoTimeoutMs)*time.Millisecond),
		Arbiter:    arbiter,
		Dev:        dev,
		Commands:   commands,
		Clock:      clock,
		PollEvery:  time.Duration(cfg.CommandPollMs) * time.Millisecond,
		CycleDelay: time.Duration(cfg.CycleDelayMs) * time.Millisecond,
	}

	if dev != nil {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			device.ReadLines(dev, commands, r.stop)
		}()
	}
	return r, nil
}

// Start performs the one-time hardware setup and launches the control loop.
func (r *Rover) Start() error {
	if err := r.Board.Setup(); err != nil {
		return fmt.Errorf("rover %s: board setup: %w", r.ID, err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Loop.Run(r.stop)
	}()
	log.Printf("rover %s: control loop started", r.ID)
	return nil
}

// Stop halts the motors, stops the goroutines and closes the device.
func (r *Rover) Stop() {
	select {
	case <-r.stop:
		// already closed
	default:
		close(r.stop)
	}
	if r.Dev != nil {
		_ = r.Dev.Close()
	}
	r.wg.Wait()
	// leave the wheels braked, not in whatever the last cycle chose
	r.motors.Apply(pilot.ActionStop)
	log.Printf("rover %s: stopped", r.ID)
}
