// Package notify decides, per trigger, whether to vibrate, play a sound or
// ring the terminal bell.
package notify

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/logging"
	"github.com/convocli/notifier/internal/metrics"
	"github.com/convocli/notifier/internal/platform"
	"github.com/convocli/notifier/internal/state"
)

// DebounceWindow is the minimum gap between two dispatched triggers.
const DebounceWindow = 2 * time.Second

// Detector classifies the host environment
type Detector interface {
	Detect() platform.Environment
}

// Outcome describes what a single dispatch did.
type Outcome struct {
	Suppressed  bool                 `json:"suppressed"`
	Environment platform.Environment `json:"environment,omitempty"`
	Vibrated    bool                 `json:"vibrated"`
	Sounded     bool                 `json:"sounded"`
	Belled      bool                 `json:"belled"`
	Player      string               `json:"player,omitempty"`
	Sound       string               `json:"sound,omitempty"`
	SoundFile   string               `json:"sound_file,omitempty"`
}

// Dispatcher turns one trigger into at most one notification per backend
// family. All collaborators are injected so tests can control time, the
// filesystem and which commands "exist".
type Dispatcher struct {
	Store     state.Store
	Probe     platform.Probe
	Launcher  platform.Launcher
	Bell      platform.Bell
	Detector  Detector
	SoundsDir string
	Now       func() time.Time // injectable clock for testing
	Log       *zerolog.Logger
}

// New returns a Dispatcher wired to the real host.
func New(store state.Store, soundsDir string) *Dispatcher {
	return &Dispatcher{
		Store:     store,
		Probe:     platform.PathProbe{},
		Launcher:  platform.ProcessLauncher{},
		Bell:      platform.NewTerminalBell(),
		Detector:  platform.Detector{},
		SoundsDir: soundsDir,
		Now:       time.Now,
	}
}

func (d *Dispatcher) log() *zerolog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logging.Get()
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Dispatch runs the decision procedure for one trigger. It never fails:
// every problem is logged and the chain moves on to the next fallback.
func (d *Dispatcher) Dispatch(cfg *config.Config) Outcome {
	start := d.now()
	d.log().Info().
		Str("mode", string(cfg.Mode)).
		Str("sound", cfg.Sound).
		Int("vibration_ms", cfg.VibrationDuration).
		Bool("preview", cfg.Preview).
		Msg("trigger received")

	if !cfg.Preview && d.debounced(start) {
		metrics.IncSuppressed()
		d.log().Debug().Msg("suppressed by debounce window")
		return Outcome{Suppressed: true}
	}
	metrics.IncDispatched()

	out := Outcome{Environment: d.Detector.Detect()}
	d.log().Debug().Str("environment", string(out.Environment)).Msg("environment detected")

	switch cfg.Mode {
	case config.ModeVibrateOnly:
		out.Vibrated = d.vibrate(cfg)
	case config.ModeSoundOnly:
		out.Sounded = d.playSound(cfg, &out)
	case config.ModeBoth:
		out.Vibrated = d.vibrate(cfg)
		out.Sounded = d.playSound(cfg, &out)
	default:
		if out.Environment == platform.Mobile {
			if out.Vibrated = d.vibrate(cfg); !out.Vibrated {
				out.Sounded = d.playSound(cfg, &out)
			}
		} else {
			if out.Sounded = d.playSound(cfg, &out); !out.Sounded {
				out.Vibrated = d.vibrate(cfg)
			}
		}
	}

	if !out.Vibrated && !out.Sounded {
		out.Belled = d.ring()
	}

	end := d.now()
	metrics.ObserveDispatchDuration(end.Sub(start).Seconds())
	metrics.SetLastDispatch(end)
	d.log().Info().
		Bool("vibrated", out.Vibrated).
		Bool("sounded", out.Sounded).
		Bool("belled", out.Belled).
		Str("player", out.Player).
		Str("file", out.SoundFile).
		Msg("dispatch complete")
	return out
}

// debounced reports whether now falls inside the window opened by the
// previous trigger, and records now when it does not. A stored time in the
// future is treated as clock skew and does not suppress.
func (d *Dispatcher) debounced(now time.Time) bool {
	last, ok, err := d.Store.LastTrigger()
	if err != nil {
		d.log().Warn().Err(err).Msg("could not read last trigger; dispatching anyway")
	}
	if ok {
		elapsed := now.Sub(last)
		if elapsed >= 0 && elapsed < DebounceWindow {
			return true
		}
	}
	if err := d.Store.SetLastTrigger(now); err != nil {
		d.log().Warn().Err(err).Msg("could not record trigger time")
	}
	return false
}
