package mqtt

import (
	"time"

	"github.com/okvist/dash-input/internal/input"
	"github.com/okvist/dash-input/internal/obd"
)

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	// Events contains all input events that were published.
	Events []input.Event

	// EventPayloads contains the JSON payloads for input events.
	EventPayloads [][]byte

	// Results contains all diagnostic outcomes that were published.
	Results []obd.Result

	// Telemetry contains all vehicle snapshots that were published.
	Telemetry []obd.VehicleData

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by the event/result/telemetry
	// publish methods.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishEvent records the input event.
func (f *FakePublisher) PublishEvent(event input.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Events = append(f.Events, event)

	payload, err := FormatEventPayload(event)
	if err != nil {
		return err
	}
	f.EventPayloads = append(f.EventPayloads, payload)

	return nil
}

// PublishResult records the diagnostic outcome.
func (f *FakePublisher) PublishResult(res obd.Result) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Results = append(f.Results, res)
	return nil
}

// PublishTelemetry records the vehicle snapshot.
func (f *FakePublisher) PublishTelemetry(v obd.VehicleData, at time.Time) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Telemetry = append(f.Telemetry, v)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded messages.
func (f *FakePublisher) Reset() {
	f.Events = nil
	f.EventPayloads = nil
	f.Results = nil
	f.Telemetry = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
