package cmd

import (
	"errors"
	"fmt"

	"addressfinder-backend/cmd/addressfinder/globals"
	"addressfinder-backend/internal/console"
	"addressfinder-backend/internal/finder"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <postcode>",
	Short: "List the sale records at a postcode.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := globals.Get(cmd.Context()).Finder

		session, err := f.Search(cmd.Context(), args[0])
		if err != nil {
			return errors.New(finder.Describe(err))
		}
		if session.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "No addresses found for %s.\n", session.Postcode)
			return nil
		}

		console.RenderRecords(cmd.OutOrStdout(), session.Records)
		return nil
	},
}
