// Package config loads daemon settings from a TOML file with sane defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/okvist/dash-input/internal/gpio"
)

// Config holds all daemon settings.
type Config struct {
	// BCM pin numbers for the three inputs.
	ActionPin      int `toml:"action_pin"`
	ToggleReadPin  int `toml:"toggle_read_pin"`
	ToggleClearPin int `toml:"toggle_clear_pin"`

	// DebounceMs is how long a level must hold before it is accepted.
	DebounceMs int64 `toml:"debounce_ms"`

	// PollHz is the GPIO sampling rate.
	PollHz int `toml:"poll_hz"`

	// DataMs is the vehicle data snapshot cadence.
	DataMs int64 `toml:"data_ms"`

	// HeartbeatMs is the status heartbeat cadence. Zero disables it.
	HeartbeatMs int64 `toml:"heartbeat_ms"`

	// Broker is the MQTT broker URL.
	Broker string `toml:"broker"`

	// HTTPAddr is the status server listen address.
	HTTPAddr string `toml:"http_addr"`

	// SimSeed seeds the vehicle data simulator. Zero means seed from the clock.
	SimSeed int64 `toml:"sim_seed"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ActionPin:      gpio.DefaultPinAction,
		ToggleReadPin:  gpio.DefaultPinToggleRead,
		ToggleClearPin: gpio.DefaultPinToggleClear,
		DebounceMs:     30,
		PollHz:         50,
		DataMs:         300,
		HeartbeatMs:    0,
		Broker:         "tcp://localhost:1883",
		HTTPAddr:       ":8080",
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error;
// the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the daemon cannot run with.
func (c Config) Validate() error {
	if c.ActionPin < 0 || c.ToggleReadPin < 0 || c.ToggleClearPin < 0 {
		return fmt.Errorf("pin numbers must be non-negative")
	}
	if c.ActionPin == c.ToggleReadPin || c.ActionPin == c.ToggleClearPin || c.ToggleReadPin == c.ToggleClearPin {
		return fmt.Errorf("pin numbers must be distinct")
	}
	if c.DebounceMs <= 0 {
		return fmt.Errorf("debounce_ms must be positive, got %d", c.DebounceMs)
	}
	if c.PollHz <= 0 {
		return fmt.Errorf("poll_hz must be positive, got %d", c.PollHz)
	}
	if c.DataMs <= 0 {
		return fmt.Errorf("data_ms must be positive, got %d", c.DataMs)
	}
	if c.HeartbeatMs < 0 {
		return fmt.Errorf("heartbeat_ms must not be negative, got %d", c.HeartbeatMs)
	}
	if c.Broker == "" {
		return fmt.Errorf("broker must not be empty")
	}
	return nil
}

// DebounceInterval returns the debounce window as a duration.
func (c Config) DebounceInterval() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// PollInterval returns the time between GPIO samples.
func (c Config) PollInterval() time.Duration {
	return time.Second / time.Duration(c.PollHz)
}

// DataInterval returns the time between vehicle data snapshots.
func (c Config) DataInterval() time.Duration {
	return time.Duration(c.DataMs) * time.Millisecond
}

// HeartbeatInterval returns the heartbeat cadence, or zero when disabled.
func (c Config) HeartbeatInterval() time.Duration {
	return time.Duration(c.HeartbeatMs) * time.Millisecond
}
