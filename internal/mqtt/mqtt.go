// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/okvist/dash-input/internal/input"
	"github.com/okvist/dash-input/internal/obd"
)

// Topics for dashboard traffic.
const (
	// TopicEvents carries input events: page changes, diagnostic requests,
	// toggle mode changes.
	TopicEvents = "car/dashboard/input/events"

	// TopicResults carries outcomes of fault-code reads and clears.
	TopicResults = "car/dashboard/obd/results"

	// TopicTelemetry carries vehicle data snapshots at the data cadence.
	TopicTelemetry = "car/dashboard/telemetry"

	// TopicSystem carries system lifecycle events.
	TopicSystem = "car/dashboard/system"
)

// Publisher publishes dashboard traffic.
type Publisher interface {
	// PublishEvent sends an input event to the broker.
	// Returns error if publishing fails (must not crash the process).
	PublishEvent(event input.Event) error

	// PublishResult sends a diagnostic request outcome.
	PublishResult(res obd.Result) error

	// PublishTelemetry sends a vehicle data snapshot.
	PublishTelemetry(v obd.VehicleData, at time.Time) error

	// PublishSystem sends a system lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// EventPayload is the MQTT message envelope for input events.
type EventPayload struct {
	Input EventInner `json:"input"`
}

// EventInner contains the input event details.
type EventInner struct {
	Timestamp   string `json:"timestamp"`
	Command     string `json:"command"`
	Page        int    `json:"page"`
	PageName    string `json:"page_name"`
	Mode        string `json:"mode"`
	WiringFault bool   `json:"wiring_fault,omitempty"`
	Advisory    string `json:"advisory,omitempty"`
}

// FormatEventPayload creates the JSON payload for an input event.
func FormatEventPayload(event input.Event) ([]byte, error) {
	payload := EventPayload{
		Input: EventInner{
			Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
			Command:     string(event.Command),
			Page:        int(event.Page),
			PageName:    event.Page.String(),
			Mode:        string(event.Mode),
			WiringFault: event.WiringFault,
			Advisory:    event.Advisory,
		},
	}
	return json.Marshal(payload)
}

// ResultPayload is the MQTT message envelope for diagnostic outcomes.
type ResultPayload struct {
	Result ResultInner `json:"obd_result"`
}

// ResultInner contains the outcome details.
type ResultInner struct {
	Timestamp string          `json:"timestamp"`
	Request   string          `json:"request"`
	OK        bool            `json:"ok"`
	Codes     []obd.FaultCode `json:"codes,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// FormatResultPayload creates the JSON payload for a diagnostic outcome.
func FormatResultPayload(res obd.Result) ([]byte, error) {
	inner := ResultInner{
		Timestamp: res.Completed.UTC().Format(time.RFC3339),
		Request:   string(res.Request.Kind),
		OK:        res.Err == nil,
		Codes:     res.Codes,
	}
	if res.Err != nil {
		inner.Error = res.Err.Error()
	}
	return json.Marshal(ResultPayload{Result: inner})
}

// TelemetryPayload is the MQTT message envelope for vehicle snapshots.
type TelemetryPayload struct {
	Timestamp string          `json:"timestamp"`
	Vehicle   obd.VehicleData `json:"vehicle"`
}

// FormatTelemetryPayload creates the JSON payload for a vehicle snapshot.
func FormatTelemetryPayload(v obd.VehicleData, at time.Time) ([]byte, error) {
	return json.Marshal(TelemetryPayload{
		Timestamp: at.UTC().Format(time.RFC3339),
		Vehicle:   v,
	})
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
