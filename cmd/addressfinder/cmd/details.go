package cmd

import (
	"errors"
	"fmt"

	"addressfinder-backend/cmd/addressfinder/globals"
	"addressfinder-backend/internal/console"
	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/property"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details <postcode> <address | index>",
	Short: "Show the sale and energy certificate details of one address.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := globals.Get(cmd.Context()).Finder
		out := cmd.OutOrStdout()

		session, err := f.Search(cmd.Context(), args[0])
		if err != nil {
			return errors.New(finder.Describe(err))
		}
		if session.Empty() {
			fmt.Fprintf(out, "No addresses found for %s.\n", session.Postcode)
			return nil
		}

		address := console.Resolve(session, args[1])
		details, err := f.Details(cmd.Context(), session, address)
		if errors.Is(err, property.ErrNoMatchingRecord) {
			for _, s := range property.Suggest(session.Records, address, 3) {
				fmt.Fprintf(out, "did you mean: %s\n", s)
			}
		}
		if err != nil {
			return errors.New(finder.Describe(err))
		}

		console.RenderDetails(out, details)
		return nil
	},
}
