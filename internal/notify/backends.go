package notify

import (
	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/metrics"
	"github.com/convocli/notifier/internal/platform"
	"github.com/convocli/notifier/internal/sound"
)

// vibrate starts the vibration command. It returns false only when no
// vibration backend exists; a start failure still counts as attempted.
func (d *Dispatcher) vibrate(cfg *config.Config) bool {
	path, ok := d.Probe.Vibrator()
	if !ok {
		metrics.IncUnavailable("vibration")
		d.log().Debug().Msg("vibration backend unavailable")
		return false
	}
	if err := d.Launcher.Launch(path, platform.VibrateArgs(cfg.VibrationDuration)...); err != nil {
		d.log().Warn().Err(err).Str("backend", platform.VibrateCommand).Msg("vibration backend failed to start")
	}
	metrics.IncVibration(platform.VibrateCommand)
	d.log().Debug().Str("backend", path).Int("duration_ms", cfg.VibrationDuration).Msg("vibration started")
	return true
}

// playSound resolves the configured sound and starts the first playback
// backend found. It returns false when there is no asset or no backend.
func (d *Dispatcher) playSound(cfg *config.Config, out *Outcome) bool {
	name, file, err := sound.Resolve(d.SoundsDir, cfg.Sound)
	if err != nil {
		metrics.IncUnavailable("sound")
		d.log().Debug().Err(err).Str("dir", d.SoundsDir).Msg("sound asset unavailable")
		return false
	}
	if name != cfg.Sound {
		d.log().Info().Str("requested", cfg.Sound).Str("using", name).Msg("sound not found, using default")
	}

	pl, ok := d.Probe.Player()
	if !ok {
		metrics.IncUnavailable("sound")
		d.log().Debug().Msg("no playback backend available")
		return false
	}
	if err := d.Launcher.Launch(pl.Path, pl.Args(file)...); err != nil {
		d.log().Warn().Err(err).Str("backend", pl.Name).Msg("playback backend failed to start")
	}
	metrics.IncSound(pl.Name)
	out.Player = pl.Name
	out.Sound = name
	out.SoundFile = file
	d.log().Debug().Str("backend", pl.Name).Str("file", file).Msg("playback started")
	return true
}

// ring is the last resort when neither family produced anything.
func (d *Dispatcher) ring() bool {
	if !d.Bell.Ring() {
		metrics.IncUnavailable("bell")
		d.log().Warn().Msg("no mechanism accepted the terminal bell")
		return false
	}
	metrics.IncBell()
	d.log().Debug().Msg("terminal bell emitted")
	return true
}
