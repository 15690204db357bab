package cmd

import (
	"time"

	"addressfinder-backend/cmd/addressfinder/globals"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/server"
	"addressfinder-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on, overrides server.port in the config.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serve search and details over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		value := globals.Get(cmd.Context())

		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return err
		}
		if port == 0 {
			port = value.Config.Server.Port
		}

		s, err := server.New(value.Finder, server.Options{
			SessionCapacity: value.Config.Server.SessionCapacity,
			AllowedOrigins:  value.Config.Server.AllowedOrigins,
		}, telemetry.SlogAPI{})
		if err != nil {
			return err
		}

		if otel.MeterProvider != nil {
			telemetry.InstrumentPerfStats(cmd.Context(), 30*time.Second, telemetry.SlogAPI{})
		}

		return serviceutil.StartHttpServer(cmd.Context(), port, s)
	},
}
