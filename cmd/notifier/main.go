// notifier is a notification hook for AI coding assistants: it plays a
// sound on desktops and vibrates Termux phones when the assistant needs
// attention.
package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/logging"
	"github.com/convocli/notifier/internal/metrics"
	"github.com/convocli/notifier/internal/notify"
	"github.com/convocli/notifier/internal/platform"
	"github.com/convocli/notifier/internal/sound"
	"github.com/convocli/notifier/internal/state"
)

// envTriggerID carries the correlation id from the hook to its detached worker.
const envTriggerID = "CLAUDE_NOTIFIER_TRIGGER_ID"

// Test hooks
var (
	newDispatcher = notify.New
	spawnWorker   = spawnDetachedWorker
)

// workerLauncher starts the detached worker with the given environment.
var workerLauncher = func(env []string) platform.Launcher {
	return platform.ProcessLauncher{Env: env}
}

var hookForeground bool

var rootCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Sound or vibration notification hook",
	Long: `notifier plays a sound on desktop systems or vibrates a Termux device.

Run without a subcommand it acts as the hook: it hands the work to a
detached copy of itself and exits 0 straight away, so the assistant never
waits on audio.

Example hook configuration (.claude/settings.json):
  {
    "hooks": {
      "Notification": [{
        "hooks": [{ "type": "command", "command": "notifier" }]
      }]
    }
  }`,
	// Hosts may append event names or flags of their own; the hook ignores
	// them rather than fail.
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	RunE:               runHook,
}

func init() {
	rootCmd.Flags().BoolVar(&hookForeground, "foreground", false, "dispatch in this process instead of detaching")
}

func main() {
	os.Exit(execute())
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// runHook never returns an error: a notification problem must not disturb
// the host.
func runHook(_ *cobra.Command, _ []string) error {
	triggerID := uuid.NewString()
	var spawnErr error
	if !hookForeground {
		if spawnErr = spawnWorker(triggerID); spawnErr == nil {
			return nil
		}
	}
	dispatchOnce(triggerID, spawnErr)
	return nil
}

// spawnDetachedWorker re-executes this binary as the hidden dispatch command
func spawnDetachedWorker(triggerID string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	env := append(os.Environ(), envTriggerID+"="+triggerID)
	return workerLauncher(env).Launch(exe, "dispatch")
}

// dispatchOnce resolves configuration, sets up the debug log and runs a
// single dispatch against the on-disk state.
func dispatchOnce(triggerID string, spawnErr error) notify.Outcome {
	store := state.NewFileStore(state.DefaultDir())
	cfg, cfgErr := config.Resolve(store)

	cleanup := initLogging(cfg, store.LogPath(), nil)
	defer cleanup()
	log := logging.Get().With().Str("trigger", triggerID).Logger()
	if spawnErr != nil {
		log.Warn().Err(spawnErr).Msg("could not detach; dispatching inline")
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("configuration problems; defaults used where needed")
	}

	d := newDispatcher(store, soundsDir(cfg))
	d.Log = &log
	out := d.Dispatch(cfg)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn().Err(err).Msg("could not write metrics textfile")
		}
	}
	return out
}

func initLogging(cfg *config.Config, logPath string, console io.Writer) func() {
	if !cfg.Debug {
		logPath = ""
	}
	return logging.InitBestEffort(logPath, cfg.LogLevel, console)
}

func soundsDir(cfg *config.Config) string {
	if cfg.SoundsDir != "" {
		return cfg.SoundsDir
	}
	return sound.DefaultDir()
}
