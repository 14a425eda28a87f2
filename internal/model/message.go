// Package model defines shared message structures for the rover and its hub.
package model

// TelemetryFrame carries one cycle's distances plus the arbiter state. The
// rover serializes it as a wire line for the serial host and as JSON for the
// hub and the LoRaWAN uplink.
type TelemetryFrame struct {
	RoverID   string  `json:"rover_id"`
	Front     float64 `json:"front_cm"`
	Left      float64 `json:"left_cm"`
	Right     float64 `json:"right_cm"`
	Mode      string  `json:"mode"`
	Action    string  `json:"action"`
	Timestamp string  `json:"timestamp,omitempty"`
}
