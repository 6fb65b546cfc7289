package mqtt

import (
	"testing"
	"time"

	"cloudbaro/internal/types"
)

func ptr(v float64) *float64 { return &v }

func TestValidateTelemetry(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      types.Telemetry
		wantErr bool
	}{
		{
			name:    "valid full reading",
			in:      types.Telemetry{StationID: "home", Timestamp: ts, Temperature: ptr(21.5), Pressure: ptr(1013.2)},
			wantErr: false,
		},
		{
			name:    "temperature only",
			in:      types.Telemetry{StationID: "home", Timestamp: ts, Temperature: ptr(-5.0)},
			wantErr: false,
		},
		{
			name:    "pressure only",
			in:      types.Telemetry{StationID: "home", Timestamp: ts, Pressure: ptr(965.9)},
			wantErr: false,
		},
		{
			name:    "missing station id",
			in:      types.Telemetry{Timestamp: ts, Temperature: ptr(21.5)},
			wantErr: true,
		},
		{
			name:    "missing timestamp",
			in:      types.Telemetry{StationID: "home", Temperature: ptr(21.5)},
			wantErr: true,
		},
		{
			name:    "no readings",
			in:      types.Telemetry{StationID: "home", Timestamp: ts},
			wantErr: true,
		},
		{
			name:    "zero pressure",
			in:      types.Telemetry{StationID: "home", Timestamp: ts, Pressure: ptr(0)},
			wantErr: true,
		},
		{
			name:    "negative pressure",
			in:      types.Telemetry{StationID: "home", Timestamp: ts, Pressure: ptr(-3)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTelemetry(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTelemetry() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
