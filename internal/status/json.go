package status

import (
	"encoding/json"
	"time"

	"github.com/okvist/dash-input/internal/obd"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string           `json:"event,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	Page          int              `json:"page"`
	PageName      string           `json:"page_name"`
	Mode          string           `json:"mode"`
	Advisory      string           `json:"advisory,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	StartTime     string           `json:"start_time"`
	Timestamp     string           `json:"timestamp"`
	MQTT          MQTTStatus       `json:"mqtt"`
	Counts        CountsJSON       `json:"event_counts"`
	Vehicle       *obd.VehicleData `json:"vehicle,omitempty"`
	LastCodes     []obd.FaultCode  `json:"last_codes,omitempty"`
	LastCodesAt   string           `json:"last_codes_at,omitempty"`
	Network       *NetworkJSON     `json:"network,omitempty"`
	Config        ConfigJSON       `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	PagesAdvanced int `json:"pages_advanced"`
	ReadRequests  int `json:"read_requests"`
	ClearRequests int `json:"clear_requests"`
	NoOps         int `json:"noops"`
	WiringFaults  int `json:"wiring_faults"`
	ModeChanges   int `json:"mode_changes"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs         int64  `json:"poll_ms"`
	DebounceMs     int64  `json:"debounce_ms"`
	DataMs         int64  `json:"data_ms"`
	HeartbeatMs    int64  `json:"heartbeat_ms"`
	Broker         string `json:"broker"`
	HTTPAddr       string `json:"http_addr"`
	ActionPin      int    `json:"action_pin"`
	ToggleReadPin  int    `json:"toggle_read_pin"`
	ToggleClearPin int    `json:"toggle_clear_pin"`
}

func buildInner(snap Snapshot) StatusInner {
	mode := string(snap.Mode)
	if mode == "" {
		mode = "UNKNOWN"
	}

	inner := StatusInner{
		Page:          int(snap.Page),
		PageName:      snap.Page.String(),
		Mode:          mode,
		Advisory:      snap.Advisory,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			PagesAdvanced: snap.Counts.PagesAdvanced,
			ReadRequests:  snap.Counts.ReadRequests,
			ClearRequests: snap.Counts.ClearRequests,
			NoOps:         snap.Counts.NoOps,
			WiringFaults:  snap.Counts.WiringFaults,
			ModeChanges:   snap.Counts.ModeChanges,
		},
		Vehicle:   snap.Vehicle,
		LastCodes: snap.LastCodes,
		Config: ConfigJSON{
			PollMs:         snap.Config.PollMs,
			DebounceMs:     snap.Config.DebounceMs,
			DataMs:         snap.Config.DataMs,
			HeartbeatMs:    snap.Config.HeartbeatMs,
			Broker:         snap.Config.Broker,
			HTTPAddr:       snap.Config.HTTPAddr,
			ActionPin:      snap.Config.ActionPin,
			ToggleReadPin:  snap.Config.ToggleReadPin,
			ToggleClearPin: snap.Config.ToggleClearPin,
		},
	}
	if !snap.LastCodesAt.IsZero() {
		inner.LastCodesAt = snap.LastCodesAt.UTC().Format(time.RFC3339)
	}
	return inner
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
