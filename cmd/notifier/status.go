package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/notify"
	"github.com/convocli/notifier/internal/platform"
	"github.com/convocli/notifier/internal/sound"
	"github.com/convocli/notifier/internal/state"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved configuration and available backends",
	Long: `Show what a dispatch would see right now: the resolved configuration,
the environment class, which vibration and playback commands are on PATH,
and when the last notification fired.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	store := state.NewFileStore(state.DefaultDir())
	cfg, cfgErr := config.Resolve(store)
	probe := platform.PathProbe{}
	out := cmd.OutOrStdout()

	row := func(label, value string) {
		fmt.Fprintf(out, "  %s %s\n", labelStyle.Render(label), value)
	}

	fmt.Fprintln(out, headerStyle.Render("Configuration"))
	row("mode", string(cfg.Mode))
	row("sound", cfg.Sound)
	row("vibration", strconv.Itoa(cfg.VibrationDuration)+"ms")
	row("state dir", store.Dir())
	row("sounds dir", soundsDir(cfg))
	row("debug log", debugLogLabel(cfg, store))
	if cfgErr != nil {
		row("warnings", warnStyle.Render(strings.ReplaceAll(cfgErr.Error(), "\n", "; ")))
	}

	fmt.Fprintln(out, headerStyle.Render("Environment"))
	row("class", string(platform.Detector{}.Detect()))
	_, hasVibrator := probe.Vibrator()
	row(platform.VibrateCommand, yesNo(hasVibrator))
	available := map[string]bool{}
	for _, a := range probe.AvailablePlayers() {
		available[a.Name] = true
	}
	for _, pl := range platform.Players {
		row(pl.Name, yesNo(available[pl.Name]))
	}
	name, _, err := sound.Resolve(soundsDir(cfg), cfg.Sound)
	if err != nil {
		row("asset", warnStyle.Render("missing"))
	} else {
		row("asset", name+".wav")
	}

	printLastTrigger(out, store, row)
	return nil
}

func debugLogLabel(cfg *config.Config, store *state.FileStore) string {
	if !cfg.Debug {
		return dimStyle.Render("disabled")
	}
	return store.LogPath()
}

func printLastTrigger(out io.Writer, store state.Store, row func(string, string)) {
	fmt.Fprintln(out, headerStyle.Render("Debounce"))
	last, ok, err := store.LastTrigger()
	switch {
	case err != nil:
		row("last trigger", warnStyle.Render(err.Error()))
	case !ok:
		row("last trigger", dimStyle.Render("never"))
	default:
		row("last trigger", last.Format(time.RFC3339)+dimStyle.Render(" ("+time.Since(last).Round(time.Second).String()+" ago)"))
	}
	row("window", notify.DebounceWindow.String())
}
