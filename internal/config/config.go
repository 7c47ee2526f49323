package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which notification families are attempted.
type Mode string

const (
	ModeAuto        Mode = "auto"
	ModeSoundOnly   Mode = "sound-only"
	ModeVibrateOnly Mode = "vibrate-only"
	ModeBoth        Mode = "both"
)

// Defaults applied when a value is absent or unusable.
const (
	DefaultSound             = "chime"
	DefaultVibrationDuration = 200
	DefaultLogLevel          = "info"
)

// ParseMode reports whether s names a known mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeAuto, ModeSoundOnly, ModeVibrateOnly, ModeBoth:
		return m, true
	}
	return ModeAuto, false
}

// Config holds the settings for a single dispatch
type Config struct {
	Mode Mode `json:"mode" yaml:"mode"`
	// Sound is a catalog name such as "chime" or "thock"
	Sound string `json:"sound" yaml:"sound"`
	// VibrationDuration in milliseconds, passed to the vibration backend
	VibrationDuration int `json:"vibration_duration" yaml:"vibration_duration"`
	// Preview disables the debounce check. It is only ever taken from the
	// caller's environment; see Resolve.
	Preview bool `json:"preview" yaml:"preview"`

	// SoundsDir overrides the directory holding the catalog's .wav files
	SoundsDir string `json:"sounds_dir" yaml:"sounds_dir"`

	// Diagnostics
	LogLevel    string `json:"log_level" yaml:"log_level"`
	Debug       bool   `json:"debug" yaml:"debug"`
	MetricsFile string `json:"metrics_file" yaml:"metrics_file"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		Mode:              ModeAuto,
		Sound:             DefaultSound,
		VibrationDuration: DefaultVibrationDuration,
		Preview:           false,
		LogLevel:          DefaultLogLevel,
		// the debug log is on unless explicitly disabled
		Debug: true,
	}
}

// Validate returns a list of non-fatal configuration warnings. Every warned
// value is replaced by its default in Normalize.
func (c *Config) Validate() []string {
	var warnings []string
	if _, ok := ParseMode(string(c.Mode)); !ok && c.Mode != "" {
		warnings = append(warnings, fmt.Sprintf("unknown mode %q, falling back to %q", c.Mode, ModeAuto))
	}
	if c.VibrationDuration <= 0 {
		warnings = append(warnings, fmt.Sprintf("vibration duration must be positive, got %d", c.VibrationDuration))
	}
	return warnings
}

// Normalize replaces empty or invalid values with their defaults.
func (c *Config) Normalize() {
	if m, ok := ParseMode(string(c.Mode)); ok {
		c.Mode = m
	} else {
		c.Mode = ModeAuto
	}
	if c.Sound == "" {
		c.Sound = DefaultSound
	}
	if c.VibrationDuration <= 0 {
		c.VibrationDuration = DefaultVibrationDuration
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// ApplyFile overlays YAML config bytes onto cfg. Only keys present in the
// document are changed.
func ApplyFile(cfg *Config, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// LoadConfigFromFile loads config from a YAML file on top of the defaults
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyFile(cfg, b); err != nil {
		return nil, err
	}
	return cfg, nil
}
