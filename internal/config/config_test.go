package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dash-input.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 17, cfg.ActionPin)
	assert.Equal(t, 27, cfg.ToggleReadPin)
	assert.Equal(t, 22, cfg.ToggleClearPin)
	assert.Equal(t, int64(30), cfg.DebounceMs)
	assert.Equal(t, 50, cfg.PollHz)
	assert.Equal(t, int64(300), cfg.DataMs)
	assert.Equal(t, int64(0), cfg.HeartbeatMs)
	assert.Equal(t, "tcp://localhost:1883", cfg.Broker)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
action_pin = 5
toggle_read_pin = 6
toggle_clear_pin = 13
debounce_ms = 50
poll_hz = 100
data_ms = 500
heartbeat_ms = 900000
broker = "tcp://192.168.1.200:1883"
http_addr = ":9090"
sim_seed = 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.ActionPin)
	assert.Equal(t, 6, cfg.ToggleReadPin)
	assert.Equal(t, 13, cfg.ToggleClearPin)
	assert.Equal(t, int64(50), cfg.DebounceMs)
	assert.Equal(t, 100, cfg.PollHz)
	assert.Equal(t, int64(500), cfg.DataMs)
	assert.Equal(t, int64(900000), cfg.HeartbeatMs)
	assert.Equal(t, "tcp://192.168.1.200:1883", cfg.Broker)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, int64(42), cfg.SimSeed)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `broker = "tcp://10.0.0.1:1883"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tcp://10.0.0.1:1883", cfg.Broker)
	assert.Equal(t, 17, cfg.ActionPin)
	assert.Equal(t, int64(30), cfg.DebounceMs)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, `broker = [not toml`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"zero debounce", `debounce_ms = 0`},
		{"negative poll rate", `poll_hz = -1`},
		{"zero data interval", `data_ms = 0`},
		{"negative heartbeat", `heartbeat_ms = -5`},
		{"empty broker", `broker = ""`},
		{"duplicate pins", "action_pin = 27\ntoggle_read_pin = 27"},
		{"negative pin", `action_pin = -1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestIntervalHelpers(t *testing.T) {
	cfg := Config{DebounceMs: 30, PollHz: 50, DataMs: 300, HeartbeatMs: 900000}

	assert.Equal(t, 30*time.Millisecond, cfg.DebounceInterval())
	assert.Equal(t, 20*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 300*time.Millisecond, cfg.DataInterval())
	assert.Equal(t, 15*time.Minute, cfg.HeartbeatInterval())
}
