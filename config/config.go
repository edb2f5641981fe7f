// SPDX-License-Identifier: EPL-2.0

// Package config holds the engine configuration and the key/value stores
// used to persist sound settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names the audio backend implementation.
type Backend string

const (
	// BackendAuto picks miniaudio when its context initializes, otherwise oto.
	BackendAuto Backend = "auto"
	// BackendOto plays through ebitengine/oto (no capture, no enumeration).
	BackendOto Backend = "oto"
	// BackendMiniaudio plays and captures through miniaudio (malgo).
	BackendMiniaudio Backend = "miniaudio"
	// BackendNull renders in software and discards the output.
	BackendNull Backend = "null"
)

var ErrUnknownBackend = errors.New("unknown audio backend")

// Config holds audio engine configuration.
type Config struct {
	// Backend selects the device backend. Default: "auto".
	Backend Backend `yaml:"backend" json:"backend"`

	// Device is the playback device name hint; empty means system default.
	Device string `yaml:"device" json:"device"`

	// SampleRate is the output mixing rate in Hz. Default: 44100.
	SampleRate int `yaml:"sample_rate" json:"sample_rate"`

	// BufferDuration is the device buffer length. Default: 40ms.
	BufferDuration time.Duration `yaml:"buffer_duration" json:"buffer_duration"`

	// SettingsPath is the YAML file that persists gain settings.
	// Empty keeps settings in memory only.
	SettingsPath string `yaml:"settings_path" json:"settings_path"`

	// LogLevel is a logrus level name. Default: "info".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendAuto,
		SampleRate:     44100,
		BufferDuration: 40 * time.Millisecond,
		LogLevel:       "info",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendOto, BackendMiniaudio, BackendNull:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("buffer_duration must be positive, got %v", c.BufferDuration)
	}

	return nil
}

// BufferFrames returns the device buffer length in sample frames.
func (c *Config) BufferFrames() int {
	return int(float64(c.SampleRate) * c.BufferDuration.Seconds())
}

// Load reads a YAML config file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from SNDCORE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SNDCORE_BACKEND"); v != "" {
		c.Backend = Backend(v)
	}
	if v := os.Getenv("SNDCORE_DEVICE"); v != "" {
		c.Device = v
	}
	if v := os.Getenv("SNDCORE_SETTINGS"); v != "" {
		c.SettingsPath = v
	}
	if v := os.Getenv("SNDCORE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
