package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvMode              = "CLAUDE_NOTIFIER_MODE"
	EnvSound             = "CLAUDE_NOTIFIER_SOUND"
	EnvVibrationDuration = "CLAUDE_NOTIFIER_VIBRATION_DURATION"
	EnvPreview           = "CLAUDE_NOTIFIER_PREVIEW"
	EnvSoundsDir         = "CLAUDE_NOTIFIER_SOUNDS_DIR"
	EnvLogLevel          = "CLAUDE_NOTIFIER_LOG_LEVEL"
	EnvDebug             = "CLAUDE_NOTIFIER_DEBUG"
	EnvMetricsFile       = "CLAUDE_NOTIFIER_METRICS_FILE"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Unlike a startup config loader this
// never stops at the first bad value: every parsable variable is applied and
// the parse failures are returned joined together.
//
// Environment variables supported:
// - CLAUDE_NOTIFIER_MODE (auto, sound-only, vibrate-only, both)
// - CLAUDE_NOTIFIER_SOUND (catalog name, e.g. "chime")
// - CLAUDE_NOTIFIER_VIBRATION_DURATION (int milliseconds, e.g. 200)
// - CLAUDE_NOTIFIER_PREVIEW (bool)
// - CLAUDE_NOTIFIER_SOUNDS_DIR (path)
// - CLAUDE_NOTIFIER_LOG_LEVEL (debug, info, warn, error)
// - CLAUDE_NOTIFIER_DEBUG (bool, debug log on/off)
// - CLAUDE_NOTIFIER_METRICS_FILE (path of a Prometheus textfile)
func ApplyEnvOverrides(cfg *Config) error {
	return errors.Join(
		applyDispatchEnv(cfg),
		applyDiagnosticsEnv(cfg),
	)
}

// applyDispatchEnv handles the values that change what gets dispatched
func applyDispatchEnv(cfg *Config) error {
	var errs []error
	if v := os.Getenv(EnvMode); v != "" {
		cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv(EnvSound); v != "" {
		cfg.Sound = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvVibrationDuration); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", EnvVibrationDuration, err))
		} else {
			cfg.VibrationDuration = n
		}
	}
	if v := os.Getenv(EnvSoundsDir); v != "" {
		cfg.SoundsDir = v
	}
	errs = append(errs, setBoolEnv(EnvPreview, func(b bool) { cfg.Preview = b }))
	return errors.Join(errs...)
}

func applyDiagnosticsEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		cfg.MetricsFile = v
	}
	return setBoolEnv(EnvDebug, func(b bool) { cfg.Debug = b })
}

// PreviewFromEnv reports the caller's preview flag. Unset or unparsable
// values mean false.
func PreviewFromEnv() bool {
	b, err := strconv.ParseBool(os.Getenv(EnvPreview))
	return err == nil && b
}

// setBoolEnv is a small helper to parse boolean environment variables
func setBoolEnv(env string, setter func(bool)) error {
	if v := os.Getenv(env); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		setter(b)
	}
	return nil
}
