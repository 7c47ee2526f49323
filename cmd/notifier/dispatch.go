package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dispatchCmd)
}

// dispatchCmd is what the detached worker runs. It is not meant for users.
var dispatchCmd = &cobra.Command{
	Use:    "dispatch",
	Short:  "INTERNAL: run one dispatch in this process",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		id := os.Getenv(envTriggerID)
		if id == "" {
			id = uuid.NewString()
		}
		dispatchOnce(id, nil)
		return nil
	},
}
