package cli

import (
	"github.com/spf13/cobra"
)

type RunOptions struct {
	DryRun bool
	Strict bool
}

func NewRunCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one extract, transform and load cycle",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runSnapshot(c.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract and transform only; skip the upload")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when the upload is rejected")

	return cmd
}
