package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/encryption"
)

// EnvPrefix is the prefix of the environment variables read for every flag.
const EnvPrefix = "FILECRYPT"

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "filecrypt [flags] command [flags]",
		Short: "Whole-file symmetric encryption for build pipelines",
		Long: `A file encryption helper for build scripts.
The key is used as raw key material and the output is bare ciphertext
(ECB mode, PKCS#7 padding, no header), so the same key and algorithm
must be supplied to decrypt it again.

Every flag can also be set through the environment, e.g. FILECRYPT_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("key", "k", "", "Encryption key, its raw bytes are the key material")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a file holding the encryption key")
	root.PersistentFlags().
		StringP("algorithm", "a", encryption.Default().String(), "Cipher transformation, see the algorithms command")
	root.PersistentFlags().Int("key-size", 0, "Require keys of exactly this many bytes, 0 accepts any supported size")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers for the run command")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print statistics after processing")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")
	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")

	root.AddCommand(
		NewEncryptCommand(cfg, v),
		NewDecryptCommand(cfg, v),
		NewRunCommand(cfg, v),
		NewAlgorithmsCommand(),
	)

	return root
}
