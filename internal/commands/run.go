package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/logic"
)

// NewRunCommand creates a new cobra command executing a jobs manifest.
func NewRunCommand(cfg *config.Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Run the encrypt and decrypt jobs listed in a JSONC manifest",
		Args:  cobra.NoArgs,
		RunE:  runE(cfg, logic.RunJobs),
	}

	cmd.Long = `Run the jobs listed in a JSONC manifest, an array of objects such as

  {"mode": "encrypt", "input": "secrets.json", "output": "secrets.json.enc", "algorithm": "AES"}

Relative paths are resolved against the directory of the manifest.
All jobs use the global key; "algorithm" overrides --algorithm per job
and keeps the --key-size restriction.`

	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		if err := preRun(cfg, v)(c, args); err != nil {
			return err
		}

		if cfg.Jobs == "" && !cfg.Show {
			return errors.New("validating configuration: --jobs is required")
		}

		return nil
	}

	cmd.Flags().String("jobs", "", "Path to the JSONC jobs manifest")

	return cmd
}
