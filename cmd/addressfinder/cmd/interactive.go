package cmd

import (
	"context"
	"errors"

	"addressfinder-backend/cmd/addressfinder/globals"
	"addressfinder-backend/internal/console"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search postcodes and pick addresses at a prompt.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := globals.Get(cmd.Context()).Finder

		err := console.New(f, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
