package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kosis-cpi/internal/config"
	"kosis-cpi/internal/pipeline"
	"kosis-cpi/pkg/kosisapi"
)

func newURLCmd(getConfig func() *config.Config) *cobra.Command {
	var showKey bool

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the request URL without sending it",
		Long: `Prints the GET URL the root command would request, after config resolution.
The API key is masked unless --show-key is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			params := cfg.Params
			if !showKey {
				params = params.Redacted()
			}

			u, err := kosisapi.NewClient(cfg.Endpoint, cfg.Timeout).RequestURL(params)
			if err != nil {
				return err
			}

			if outputFormat(cfg) == pipeline.FormatJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"url":    u,
					"params": params.Values(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
	cmd.Flags().BoolVar(&showKey, "show-key", false, "Print the API key in clear text")
	return cmd
}
