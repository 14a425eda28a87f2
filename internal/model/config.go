// Package model defines shared configuration structures used to initialize the rover.
// It includes the serial link, pilot tuning and telemetry uplink definitions.
package model

// Config represents the root structure loaded from configs/config.yml.
// Every field has a compiled-in default matching the reference hardware, so
// the rover runs identically with no file at all.
type Config struct {
	Rover  RoverConfig  `yaml:"rover"`
	Uplink UplinkConfig `yaml:"uplink"`
	Hub    HubConfig    `yaml:"hub"`
}

// RoverConfig defines the serial link, board backend and pilot tuning for a
// single rover process.
type RoverConfig struct {
	ID         string `yaml:"id"`
	SerialDev  string `yaml:"serial_device"`
	SerialBaud int    `yaml:"serial_baud"`
	Board      string `yaml:"board"`

	ObstacleCM    float64 `yaml:"obstacle_cm"`     // front clearance threshold
	EchoTimeoutMs int     `yaml:"echo_timeout_ms"` // per-sensor echo wait
	CycleDelayMs  int     `yaml:"cycle_delay_ms"`  // inter-cycle sleep
	CommandPollMs int     `yaml:"command_poll_ms"` // command channel cadence
	TurnHoldMs    int     `yaml:"turn_hold_ms"`    // held avoidance turn
	SettleMs      int     `yaml:"settle_ms"`       // pause after the halt

	LeftPolarity  int `yaml:"left_polarity"`  // +1 or -1, fixed wiring sign
	RightPolarity int `yaml:"right_polarity"` // +1 or -1
}

// UplinkConfig defines the optional LoRaWAN telemetry uplink.
type UplinkConfig struct {
	Enabled  bool   `yaml:"enabled"`
	UDPAddr  string `yaml:"udp_addr"`
	DevAddr  string `yaml:"dev_addr"` // 8 hex chars
	AppSKey  string `yaml:"app_skey"` // 32 hex chars
	NwkSKey  string `yaml:"nwk_skey"` // 32 hex chars
	FPort    uint8  `yaml:"fport"`
	EveryNth int    `yaml:"every_nth"` // send 1 of every N frames
}

// HubConfig defines the telemetry hub endpoint the rover posts frames to.
type HubConfig struct {
	URL string `yaml:"url"` // empty disables HTTP forwarding
}

// DefaultConfig returns the compiled-in constants of the reference design.
func DefaultConfig() Config {
	return Config{
		Rover: RoverConfig{
			ID:            "ROVER_01",
			SerialDev:     "/dev/ttyUSB0",
			SerialBaud:    115200,
			Board:         "sim",
			ObstacleCM:    20,
			EchoTimeoutMs: 30,
			CycleDelayMs:  40,
			CommandPollMs: 50,
			TurnHoldMs:    400,
			SettleMs:      100,
			LeftPolarity:  1,
			RightPolarity: 1,
		},
		Uplink: UplinkConfig{
			Enabled:  false,
			UDPAddr:  "127.0.0.1:10001",
			DevAddr:  "01000001",
			AppSKey:  "101112131415161718191a1b1c1d1e1f",
			NwkSKey:  "202122232425262728292a2b2c2d2e2f",
			FPort:    10,
			EveryNth: 25,
		},
	}
}
