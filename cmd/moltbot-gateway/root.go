package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/config"
	"github.com/upb/moltbot-gateway/internal/observability"
	"go.uber.org/zap"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	bindingsFile string
	envFiles     []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "moltbot-gateway",
		Short: "Derive and serve the moltbot container environment",
		Long: "moltbot-gateway turns worker bindings (API keys, provider selection, base URLs, " +
			"chat platform tokens) into the environment the moltbot container expects.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.bindingsFile, "bindings", "", "YAML bindings file (overrides MOLTBOT_BINDINGS_FILE)")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".dev.vars", ".env"}, "dotenv files loaded before reading the environment")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newEnvCmd(opts))
	root.AddCommand(newExecCmd(opts))
	root.AddCommand(newKeysCmd())

	return root
}

// setVersionInfo sets the version and commit for display.
func setVersionInfo(root *cobra.Command, version, commit string) {
	app.Version = version
	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("moltbot-gateway %s (commit: %s)\n", version, commit))
}

// load reads the configuration and builds the logger it asks for.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	// Unset, the defaults may be absent; named explicitly, they must exist.
	var envFiles []string
	if f := cmd.Flag("env-file"); f != nil && f.Changed {
		envFiles = o.envFiles
	}
	cfg, err := config.Load(cmd.Context(), config.LoadOptions{
		EnvFiles:     envFiles,
		BindingsFile: o.bindingsFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
