// Package status provides a thread-safe status tracker for the dash-input daemon.
// It is read by the HTTP handlers and serialized into MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/okvist/dash-input/internal/input"
	"github.com/okvist/dash-input/internal/obd"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs         int64
	DebounceMs     int64
	DataMs         int64
	HeartbeatMs    int64
	Broker         string
	HTTPAddr       string
	ActionPin      int
	ToggleReadPin  int
	ToggleClearPin int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Page          input.Page
	Mode          input.ToggleMode
	Counts        input.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Vehicle       *obd.VehicleData
	LastCodes     []obd.FaultCode
	LastCodesAt   time.Time
	Advisory      string
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Mode:      input.ModeUnknown,
			Config:    cfg,
		},
	}
}

// Update sets the page, toggle mode, advisory, and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(page input.Page, mode input.ToggleMode, advisory string, counts input.EventCounts) {
	t.mu.Lock()
	t.snap.Page = page
	t.snap.Mode = mode
	t.snap.Advisory = advisory
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// SetVehicle sets the latest vehicle data snapshot.
func (t *Tracker) SetVehicle(v obd.VehicleData) {
	t.mu.Lock()
	t.snap.Vehicle = &v
	t.mu.Unlock()
}

// SetLastCodes records the outcome of the most recent fault-code read.
func (t *Tracker) SetLastCodes(codes []obd.FaultCode, at time.Time) {
	t.mu.Lock()
	t.snap.LastCodes = codes
	t.snap.LastCodesAt = at
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
