package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"addressfinder-backend/cmd/addressfinder/globals"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/config"
	"addressfinder-backend/lib/restyutil"
	"addressfinder-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var otel telemetry.Otel

var rootCmd = &cobra.Command{
	Use:           "addressfinder",
	Short:         "addressfinder looks up the sale history and energy rating of UK addresses.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		dumpDir, err := cmd.Flags().GetString("dump-http")
		if err != nil {
			return err
		}

		telemetry.InitSlog(verbose)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		otel, err = telemetry.SetupOtel(cmd.Context(), "addressfinder", cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup otel: %w", err)
		}

		var dump restyutil.InstrumentOutput
		if dumpDir != "" {
			output, err := restyutil.NewFilesystemOutput(dumpDir)
			if err != nil {
				return err
			}
			dump = output
		}

		f, err := cfg.NewFinder(dump, telemetry.SlogAPI{})
		if err != nil {
			return err
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config: cfg,
			Finder: f,
		}))
		return nil
	},
}

// shutdownOtel flushes whatever SetupOtel installed. cobra skips post-run
// hooks when a command fails, so it is called from run instead.
var shutdownOtel = func(ctx context.Context) error {
	return otel.Shutdown(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.json5", "Path to the json5 config file, $ADDRESSFINDER_CONFIG takes precedence.")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages.")
	rootCmd.PersistentFlags().String("dump-http", "", "Write every http request and response to this directory.")
}

func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(err, shutdownOtel(shutdownCtx))
}

func Execute() {
	err := run(serviceutil.SignalContext(), os.Args[1:])
	if err != nil {
		serviceutil.Fatal("addressfinder", err)
	}
}
