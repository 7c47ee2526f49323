package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/sound"
	"github.com/convocli/notifier/internal/state"
)

func init() {
	rootCmd.AddCommand(soundsCmd)
}

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List the sound catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _ := config.Resolve(state.NewFileStore(state.DefaultDir()))
		dir := soundsDir(cfg)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Sounds in"), dir)
		for _, e := range sound.Catalog() {
			_, err := os.Stat(sound.Path(dir, e.Name))
			marker := okStyle.Render("✓")
			if err != nil {
				marker = warnStyle.Render("✗")
			}
			line := fmt.Sprintf("%s %s %s", marker, nameStyle.Render(e.Name), e.Description)
			if e.Name == cfg.Sound {
				line += dimStyle.Render(" (selected)")
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
