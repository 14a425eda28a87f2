package core

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"SonicRover/internal/device"
	"SonicRover/internal/hal"
	"SonicRover/internal/model"
	"SonicRover/internal/pilot"
	"SonicRover/internal/uplink"
)

// System manages the lifecycle of the rover process: configuration, board
// and link construction, the optional LoRaWAN uplink and hub forwarding.
type System struct {
	cfg   model.Config
	Rover *Rover

	uplink *uplink.Sender
	frames chan model.TelemetryFrame

	started   bool
	startLock sync.Mutex
	stop      chan struct{}
	wg        sync.WaitGroup
}

// LoadConfig reads the YAML file at path over the compiled-in defaults. An
// empty path or a missing file just yields the defaults: the rover needs no
// configuration to match the reference hardware.
func LoadConfig(path string) (model.Config, error) {
	cfg := model.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// NewSystem builds a System from the configuration at cfgPath.
func NewSystem(cfgPath string) (*System, error) {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return NewSystemFromConfig(cfg)
}

// NewSystemFromConfig builds a System from an already loaded configuration.
func NewSystemFromConfig(cfg model.Config) (*System, error) {
	s := &System{
		cfg:  cfg,
		stop: make(chan struct{}),
	}

	board, err := hal.Open(cfg.Rover.Board)
	if err != nil {
		return nil, err
	}

	// a failed serial open degrades to an autonomous-only rover, the same
	// way the vehicle keeps moving when the host link is unplugged
	var dev device.Device
	if cfg.Rover.SerialDev != "" {
		sd, err := device.NewSerialDevice(cfg.Rover.SerialDev, cfg.Rover.SerialBaud)
		if err != nil {
			log.Printf("[system] host link unavailable: %v", err)
		} else {
			dev = sd
		}
	}

	rover, err := NewRover(cfg.Rover, board, dev)
	if err != nil {
		return nil, err
	}
	s.Rover = rover

	if cfg.Uplink.Enabled {
		ctx, err := uplink.ContextFromConfig(cfg.Uplink)
		if err != nil {
			return nil, fmt.Errorf("uplink: %w", err)
		}
		sender, err := uplink.NewSender(cfg.Uplink.UDPAddr, ctx)
		if err != nil {
			return nil, fmt.Errorf("uplink: %w", err)
		}
		s.uplink = sender
	}

	if s.uplink != nil || cfg.Hub.URL != "" {
		// frames are forwarded off the control loop goroutine; a full
		// queue drops frames rather than stalling a cycle
		s.frames = make(chan model.TelemetryFrame, 32)
		rover.Loop.OnFrame = func(f model.TelemetryFrame) {
			select {
			case s.frames <- f:
			default:
			}
		}
	}
	return s, nil
}

// StartAll starts the rover and, when configured, the frame forwarder.
func (s *System) StartAll() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if s.started {
		return nil
	}

	if err := s.Rover.Start(); err != nil {
		return err
	}

	if s.frames != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.forwardFrames()
		}()
	}

	s.started = true
	return nil
}

// forwardFrames drains the frame queue into the uplink and the hub.
func (s *System) forwardFrames() {
	var nth int
	every := s.cfg.Uplink.EveryNth
	if every < 1 {
		every = 1
	}
	for {
		select {
		case <-s.stop:
			return
		case f := <-s.frames:
			if s.uplink != nil {
				nth++
				if nth%every == 0 {
					if err := s.uplink.Send(f); err != nil {
						log.Printf("[system] uplink send err: %v", err)
					}
				}
			}
			if s.cfg.Hub.URL != "" {
				s.postFrame(f)
			}
		}
	}
}

// postFrame ships one frame to the hub as a raw telemetry line.
func (s *System) postFrame(f model.TelemetryFrame) {
	line := pilot.EncodeTelemetry(f.Front, f.Left, f.Right)
	resp, err := http.Post(s.cfg.Hub.URL+"/api/telemetry", "text/plain", bytes.NewReader([]byte(line)))
	if err != nil {
		log.Printf("[system] hub post err: %v", err)
		return
	}
	if err := resp.Body.Close(); err != nil {
		log.Printf("[system] warning: close hub response: %v", err)
	}
}

// StopAll stops all running components gracefully.
func (s *System) StopAll() {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if !s.started {
		return
	}
	close(s.stop)
	s.Rover.Stop()
	if s.uplink != nil {
		if err := s.uplink.Close(); err != nil {
			log.Printf("[system] warning: close uplink: %v", err)
		}
	}
	s.wg.Wait()
	s.started = false
}
