// Package obd is the boundary to the vehicle-diagnostics collaborator.
// The input subsystem only ever hands it fire-and-forget requests; decoding
// PIDs and talking to a real adapter live outside this repository.
package obd

import (
	"context"
	"time"
)

// FaultCode is one diagnostic trouble code reported by the ECU.
type FaultCode struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Diagnostics accepts the two diagnostic commands the dashboard can issue.
type Diagnostics interface {
	// ReadFaultCodes returns the currently stored trouble codes.
	ReadFaultCodes(ctx context.Context) ([]FaultCode, error)

	// ClearFaultCodes clears stored codes and resets the
	// distance/time-since-cleared counters.
	ClearFaultCodes(ctx context.Context) error
}

// VehicleData is one snapshot of the values the dashboard displays.
type VehicleData struct {
	Speed          float64 `json:"speed_kmh"`
	RPM            float64 `json:"rpm"`
	Throttle       float64 `json:"throttle_pct"`
	EngineLoad     float64 `json:"engine_load_pct"`
	TimingAdvance  float64 `json:"timing_advance_deg"`
	CoolantTemp    float64 `json:"coolant_temp_c"`
	IntakeTemp     float64 `json:"intake_temp_c"`
	OilTemp        float64 `json:"oil_temp_c"`
	FuelPressure   float64 `json:"fuel_pressure_kpa"`
	FuelRate       float64 `json:"fuel_rate_lph"`
	IntakePressure float64 `json:"intake_pressure_kpa"`
	MAF            float64 `json:"maf_gps"`
	MaxMAF         float64 `json:"max_maf_gps"`

	RuntimeSeconds    float64 `json:"runtime_s"`
	DistSinceClearKm  float64 `json:"dist_since_clear_km"`
	TimeSinceClearSec float64 `json:"time_since_clear_s"`
}

// DataSource produces vehicle snapshots at the data cadence.
type DataSource interface {
	Snapshot(now time.Time) VehicleData
}
