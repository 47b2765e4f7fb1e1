// Package input contains the pure button and toggle interpretation logic for
// the dashboard input subsystem. This package has NO external dependencies
// (no GPIO, MQTT, OS, or time.Sleep). Time is always injectable via time.Time
// parameters.
package input

import "time"

// Level is the logic level of a monitored pin. All inputs are pulled high
// internally, so HIGH means inactive and LOW means pressed/selected.
type Level string

const (
	LevelHigh Level = "HIGH"
	LevelLow  Level = "LOW"
)

// LevelFromActive converts an active-low reading (true = line driven low)
// into a Level.
func LevelFromActive(active bool) Level {
	if active {
		return LevelLow
	}
	return LevelHigh
}

// Edge is a debounced transition on a single input.
type Edge string

const (
	EdgeNone     Edge = ""
	EdgePressed  Edge = "PRESSED"  // stable HIGH -> LOW
	EdgeReleased Edge = "RELEASED" // stable LOW -> HIGH
)

// ToggleMode is the resolved position of the SPDT mode switch.
type ToggleMode string

const (
	ModeRead    ToggleMode = "READ"
	ModeClear   ToggleMode = "CLEAR"
	ModeUnknown ToggleMode = "UNKNOWN"
)

// Page is the dashboard page index. Pages form a fixed cycle of four.
type Page int

const (
	PageMain Page = iota
	PageTemperature
	PageFuelAir
	PageDiagnostics
)

// NumPages is the size of the page cycle.
const NumPages = 4

// Next returns the following page, wrapping from Diagnostics back to Main.
func (p Page) Next() Page {
	return (p + 1) % NumPages
}

func (p Page) String() string {
	switch p {
	case PageMain:
		return "MAIN"
	case PageTemperature:
		return "TEMPERATURE"
	case PageFuelAir:
		return "FUEL_AIR"
	case PageDiagnostics:
		return "DIAGNOSTICS"
	}
	return "INVALID"
}

// Command is the action decided for a confirmed button press (or a mode
// change notification for UI display).
type Command string

const (
	CommandAdvancePage Command = "ADVANCE_PAGE"
	CommandReadCodes   Command = "READ_CODES"
	CommandClearCodes  Command = "CLEAR_CODES"
	CommandNoOp        Command = "NOOP"
	CommandModeChanged Command = "MODE_CHANGED"
)

// AdvisoryUnknownToggle is surfaced to the UI when a press lands on the
// Diagnostics page with the toggle in an unrecognized position.
const AdvisoryUnknownToggle = "toggle position not recognized"

// Sample is one poll of the three raw pin levels.
type Sample struct {
	Action      Level
	ToggleRead  Level
	ToggleClear Level
	Time        time.Time
}

// Event is an emitted decision, published and handed to collaborators.
type Event struct {
	Timestamp   time.Time
	Command     Command
	Page        Page       // page after the event was applied
	Mode        ToggleMode // resolved toggle mode at event time
	WiringFault bool       // both toggle pins low (hardware fault, not open position)
	Advisory    string     // optional note for the UI, e.g. unknown toggle
}

// DebounceState tracks debounce progress for a single input.
type DebounceState struct {
	// Current stable (debounced) level
	Stable Level
	// Level observed but not yet held for the full debounce interval
	Pending Level
	// Time when the pending level was first observed
	PendingSince time.Time
}

// EventCounts tracks the number of each emitted command since startup.
type EventCounts struct {
	PagesAdvanced int
	ReadRequests  int
	ClearRequests int
	NoOps         int
	WiringFaults  int
	ModeChanges   int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
