package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docq/internal/config"
	"github.com/kailas-cloud/docq/internal/version"
)

const (
	flagEnv    = "env"
	flagConfig = "config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docq",
		Short:         "Query pipelines over a Redis document store",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(flagEnv, config.GetEnv(), "Environment profile (config/<env>.yaml)")
	root.PersistentFlags().String(flagConfig, "", "Explicit config file path (overrides --env)")

	root.AddCommand(newServeCmd(), newQueryCmd(), newGetCmd())
	return root
}

// loadConfig resolves the config from --config or --env.
func loadConfig(c *cobra.Command) (config.Config, string, error) {
	env, _ := c.Flags().GetString(flagEnv)
	path, _ := c.Flags().GetString(flagConfig)
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, env, err
	}
	cfg, err := config.Load(env)
	return cfg, env, err
}
