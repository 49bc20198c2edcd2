package main

import (
	"github.com/spf13/cobra"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"github.com/upb/moltbot-gateway/services/launcher"
)

func newExecCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the container environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			_, err = launcher.New(logger).Launch(cmd.Context(), launcher.Spec{
				Command: args[0],
				Args:    args[1:],
				Env:     containerenv.BuildEnvVars(cfg.Worker),
				Stdin:   cmd.InOrStdin(),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
			return err
		},
	}
	// Flags after the command name belong to the command
	cmd.Flags().SetInterspersed(false)
	return cmd
}
