// Package cli wires configuration, connectors and the ETL pipeline behind
// the cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the sensor-etl command. Running it with no
// subcommand performs exactly one snapshot with default options.
func NewRootCmd() *cobra.Command {
	defaults := &RunOptions{}

	rootCmd := &cobra.Command{
		Use:   "sensor-etl",
		Short: "Snapshot the sensor_data table into object storage as CSV",
		Long: `sensor-etl reads every row of the sensor_data table, maps each row to a
named record and uploads the result as sensor_data_<YYYYMMDDHHMMSS>.csv
to the configured bucket. Settings come from the environment or a .env file.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), defaults)
		},
	}

	rootCmd.AddCommand(NewRunCmd(), NewCheckCmd())

	return rootCmd
}
