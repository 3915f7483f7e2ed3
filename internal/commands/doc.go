// Package commands provides the command-line interface for the filecrypt tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - running a manifest of jobs
//   - listing the supported algorithms
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/logging"
)

// preRun returns a PreRunE handler that binds the flags to viper,
// unmarshals them into cfg and validates the configuration.
func preRun(cfg *config.Config, v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		if cfg.Show {
			return nil
		}

		return cfg.Validate()
	}
}

// runE returns a RunE handler that prints the configuration when --show is set
// and otherwise calls run with a logger built from the configuration.
func runE(cfg *config.Config, run func(*config.Config, zerolog.Logger, io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			out, err := cfg.Display()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		}

		logger, err := logging.New(cmd.ErrOrStderr(), logging.Config{
			Level:   cfg.LogLevel,
			Quiet:   cfg.Quiet,
			NoColor: os.Getenv("NO_COLOR") != "",
		})
		if err != nil {
			return err
		}

		return run(cfg, logger, cmd.ErrOrStderr())
	}
}

// addTransformFlags adds the input and output flags of the single-file commands.
func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Path to the input file")
	cmd.Flags().StringP("output", "o", "", "Path to the output file, overwritten if it exists")
}
