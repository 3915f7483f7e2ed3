// Command filecrypt encrypts and decrypts whole files with a raw symmetric key.
package main

import (
	"os"

	"github.com/idelchi/filecrypt/internal/commands"
	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/logging"
)

// version is set at build time.
//
//nolint:gochecknoglobals
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		logger, _ := logging.New(os.Stderr, logging.Config{Level: "error", NoColor: os.Getenv("NO_COLOR") != ""})
		logger.Error().Err(err).Msg("filecrypt failed")

		os.Exit(1)
	}
}
