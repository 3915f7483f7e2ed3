package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/idelchi/filecrypt/internal/encryption"
)

// NewAlgorithmsCommand creates a new cobra command listing the supported transformations.
func NewAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"algs"},
		Short:   "List the supported cipher transformations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.Style().Format.Header = text.FormatTitle
			t.Style().Format.HeaderAlign = text.AlignCenter

			t.AppendHeader(table.Row{"Transformation", "Block size", "Key sizes (bytes)"})

			for _, info := range encryption.Algorithms() {
				transformation := encryption.Transformation{
					Algorithm: info.Name,
					Mode:      encryption.BlockModeECB,
					Padding:   encryption.PaddingPKCS7,
				}

				t.AppendRow(table.Row{
					transformation.String(),
					fmt.Sprintf("%d", info.BlockSize),
					info.KeySizesString(),
				})
			}

			t.Render()

			return nil
		},
	}
}
