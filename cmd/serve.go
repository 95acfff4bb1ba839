package cmd

import (
	"github.com/adilsaaly/trackport/internal/api"
	"github.com/adilsaaly/trackport/internal/config"
	"github.com/adilsaaly/trackport/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start Portal Server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()
		s.Start()
	},
}

// Register the "serve" command
func init() {
	rootCmd.AddCommand(serveCmd)
}
