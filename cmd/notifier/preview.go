package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/metrics"
	"github.com/convocli/notifier/internal/sound"
	"github.com/convocli/notifier/internal/state"
)

// sleepHook is used in tests to avoid sleeping for real
var sleepHook = time.Sleep

var (
	previewPause time.Duration
	previewMode  string
)

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().DurationVar(&previewPause, "pause", 1500*time.Millisecond, "pause between sounds")
	previewCmd.Flags().StringVar(&previewMode, "mode", string(config.ModeSoundOnly), "dispatch mode used for each sound")
}

var previewCmd = &cobra.Command{
	Use:   "preview [sound...]",
	Short: "Play every catalog sound (or the named ones) in turn",
	Long: `Play each sound through the normal dispatch path with the debounce
window disabled, describing each one as it plays.

Examples:
  notifier preview               # every sound
  notifier preview thock mech    # just these
  notifier preview --mode both   # vibrate as well`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	mode, ok := config.ParseMode(previewMode)
	if !ok {
		return fmt.Errorf("invalid --mode %q", previewMode)
	}
	entries, err := previewEntries(args)
	if err != nil {
		return err
	}

	store := state.NewFileStore(state.DefaultDir())
	cfg, _ := config.Resolve(store)
	cleanup := initLogging(cfg, store.LogPath(), nil)
	defer cleanup()

	d := newDispatcher(store, soundsDir(cfg))
	out := cmd.OutOrStdout()
	before := metrics.GetSnapshot()

	fmt.Fprintln(out, headerStyle.Render("Previewing notification sounds"))
	for i, e := range entries {
		c := *cfg
		c.Sound = e.Name
		c.Mode = mode
		c.Preview = true

		fmt.Fprintf(out, "%s %s\n", nameStyle.Render(e.Name), dimStyle.Render(e.Description))
		o := d.Dispatch(&c)
		switch {
		case o.Sounded && o.Sound != e.Name:
			fmt.Fprintf(out, "  %s\n", warnStyle.Render("asset missing, played "+o.Sound))
		case !o.Sounded && !o.Vibrated:
			fmt.Fprintf(out, "  %s\n", warnStyle.Render("no backend available, rang the terminal bell"))
		}
		if i < len(entries)-1 {
			sleepHook(previewPause)
		}
	}

	after := metrics.GetSnapshot()
	fmt.Fprintf(out, "%s\n", dimStyle.Render(fmt.Sprintf("%d played, %d vibrations, %d bell fallbacks",
		after.Sounds-before.Sounds, after.Vibrations-before.Vibrations, after.Bells-before.Bells)))
	return nil
}

func previewEntries(args []string) ([]sound.Entry, error) {
	if len(args) == 0 {
		return sound.Catalog(), nil
	}
	entries := make([]sound.Entry, 0, len(args))
	for _, name := range args {
		e, ok := sound.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown sound %q (choose from: %s)", name, strings.Join(catalogNames(), ", "))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func catalogNames() []string {
	var names []string
	for _, e := range sound.Catalog() {
		names = append(names, e.Name)
	}
	return names
}
