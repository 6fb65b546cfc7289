package types

import "time"

// Telemetry is one barometer report published by a gateway and consumed by
// the server. Pressure is sea-level corrected hectopascals; temperature is
// celsius.
type Telemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature_c,omitempty"`
	Pressure    *float64  `json:"pressure_hpa,omitempty"`
	Sequence    *int      `json:"sequence,omitempty"`
}
