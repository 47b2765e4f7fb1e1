package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvist/dash-input/internal/input"
	"github.com/okvist/dash-input/internal/obd"
	"github.com/okvist/dash-input/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:         20,
		DebounceMs:     30,
		DataMs:         300,
		HeartbeatMs:    900000,
		Broker:         "tcp://192.168.1.200:1883",
		HTTPAddr:       ":8080",
		ActionPin:      17,
		ToggleReadPin:  27,
		ToggleClearPin: 22,
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(input.PageDiagnostics, input.ModeRead, "", input.EventCounts{PagesAdvanced: 5, ReadRequests: 2})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var sj status.StatusJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sj))

	assert.Equal(t, 3, sj.Status.Page)
	assert.Equal(t, "DIAGNOSTICS", sj.Status.PageName)
	assert.Equal(t, "READ", sj.Status.Mode)
	assert.True(t, sj.Status.MQTT.Connected)
	assert.Equal(t, "tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	assert.Equal(t, 5, sj.Status.Counts.PagesAdvanced)
	assert.Equal(t, 2, sj.Status.Counts.ReadRequests)
	assert.Equal(t, int64(20), sj.Status.Config.PollMs)
	assert.Equal(t, 17, sj.Status.Config.ActionPin)
}

func TestJSONDefaultsBeforeFirstSample(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sj status.StatusJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sj))

	assert.Equal(t, "MAIN", sj.Status.PageName)
	assert.Equal(t, "UNKNOWN", sj.Status.Mode)
	assert.Nil(t, sj.Status.Vehicle)
}

func TestJSONVehicleAndCodes(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetVehicle(obd.VehicleData{Speed: 88, CoolantTemp: 92})
	tr.SetLastCodes([]obd.FaultCode{{Code: "P0420", Description: "Catalyst system efficiency below threshold"}},
		time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	resp, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sj status.StatusJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sj))

	require.NotNil(t, sj.Status.Vehicle)
	assert.Equal(t, float64(88), sj.Status.Vehicle.Speed)
	require.Len(t, sj.Status.LastCodes, 1)
	assert.Equal(t, "P0420", sj.Status.LastCodes[0].Code)
	assert.Equal(t, "2026-01-01T12:00:00Z", sj.Status.LastCodesAt)
}

func TestJSONNetworkInfo(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetNetwork(&status.NetworkInfo{
		Type:   "wifi",
		IP:     "192.168.1.42",
		Status: "connected",
		SSID:   "MyNet",
	})

	resp, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sj status.StatusJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sj))

	require.NotNil(t, sj.Status.Network)
	assert.Equal(t, "192.168.1.42", sj.Status.Network.IP)
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(input.PageTemperature, input.ModeRead, "", input.EventCounts{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	resp1, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	var sj1 status.StatusJSON
	require.NoError(t, json.NewDecoder(resp1.Body).Decode(&sj1))
	resp1.Body.Close()
	assert.Equal(t, "MAIN", sj1.Status.PageName)

	tr.Update(input.PageFuelAir, input.ModeClear, "", input.EventCounts{PagesAdvanced: 2})
	tr.SetMQTTConnected(true)

	resp2, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	var sj2 status.StatusJSON
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&sj2))
	resp2.Body.Close()

	assert.Equal(t, "FUEL_AIR", sj2.Status.PageName)
	assert.Equal(t, "CLEAR", sj2.Status.Mode)
	assert.True(t, sj2.Status.MQTT.Connected)
}
