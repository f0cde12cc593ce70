package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kosis-cpi/internal/config"
	"kosis-cpi/internal/pipeline"
)

func newVersionCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputFormat(getConfig()) == pipeline.FormatJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": version,
					"commit":  commit,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "kosis-cpi %s (commit %s)\n", version, commit)
			return err
		},
	}
}
