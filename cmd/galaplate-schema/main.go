package main

import (
	"fmt"
	"os"

	"github.com/galaplate/schema/bootstrap"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cfg := bootstrap.DefaultConfig()

	root := &cobra.Command{
		Use:           "galaplate-schema",
		Short:         "Render and run dialect-aware CREATE TABLE migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Init(cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			bootstrap.Shutdown()
		},
	}

	root.PersistentFlags().StringVarP(&cfg.ConfigPath, "config", "c", cfg.ConfigPath, "Configuration directory (YAML files)")
	root.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Dotenv file loaded before configuration")
	root.PersistentFlags().StringVar(&cfg.Connection, "connection", "", "Connection name (default: database.default)")
	root.PersistentFlags().StringVar(&cfg.LogDir, "log-dir", "", "Directory for rotated JSON logs (default: $SCHEMA_LOGS_DIR)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	for _, command := range bootstrap.Kernel(nil).Commands() {
		signature := command.GetSignature()
		root.AddCommand(&cobra.Command{
			Use:   signature,
			Short: command.GetDescription(),
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				kernel := bootstrap.Kernel(cfg)
				kernel.SetIO(cmd.InOrStdin(), cmd.OutOrStdout())
				return kernel.Run(signature, args)
			},
		})
	}

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
