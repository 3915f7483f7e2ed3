package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/encryption"
	"github.com/idelchi/filecrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a file",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Mode = encryption.ModeDecrypt

			return preRun(cfg, v)(cmd, args)
		},
		RunE: runE(cfg, logic.Run),
	}

	addTransformFlags(cmd)

	return cmd
}
