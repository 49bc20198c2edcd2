package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"go.uber.org/zap"
)

func newEnvCmd(opts *rootOptions) *cobra.Command {
	var (
		redact bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the container environment as a dotenv file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			vars := containerenv.BuildEnvVars(cfg.Worker)
			if redact {
				vars = vars.Redact()
			}

			if output != "" {
				if err := vars.WriteFile(output); err != nil {
					return err
				}
				logger.Info("container env written",
					zap.String("path", output),
					zap.Object("env", containerenv.Summarize(cfg.Worker, vars)))
				return nil
			}

			rendered, err := vars.Render()
			if err != nil {
				return err
			}
			if rendered != "" {
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&redact, "redact", false, "mask API keys and tokens")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
