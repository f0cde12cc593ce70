package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kosis-cpi/internal/config"
	"kosis-cpi/internal/model"
	"kosis-cpi/internal/pipeline"
)

func newColumnsCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns kept from each KOSIS record, in output order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputFormat(getConfig()) == pipeline.FormatJSON {
				return printJSON(cmd.OutOrStdout(), model.CPIColumns)
			}
			for _, col := range model.CPIColumns {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), col); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
