package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/shiftplan/internal/wire"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored catalog with CSV tables",
		Long: `Read workers.csv, equipment.csv, position_requirements.csv, plan.csv and
assignment_history.csv from a directory and replace the stored catalog.

The import is all-or-nothing: a malformed table leaves the stored catalog
unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return wire.CatalogAdapter().Import(context.Background(), dir)
		},
	}
	cmd.Flags().StringP("dir", "d", "data", "Directory holding the catalog tables")
	return cmd
}
