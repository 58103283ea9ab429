package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "uutreport",
		Short:         "uutreport inspects, converts and uploads UUT test reports",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("config-dir", ".", "directory holding "+configFileName)
	persistent.BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newConvertCmd())

	return cmd
}

// loadConfig resolves the effective configuration for a command from the
// config file and the persistent flags
func loadConfig(cmd *cobra.Command) (Config, error) {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return Config{}, err
	}

	cfg, err := Load(dir)
	if err != nil {
		return Config{}, err
	}

	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}

// newLogger builds the process logger. Verbose mode switches to development
// output with debug level.
func newLogger(cfg Config) (*zap.Logger, error) {
	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}

		return logger, nil
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return logger, nil
}
