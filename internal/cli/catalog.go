package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/shiftplan/internal/wire"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the stored catalog",
	Long:  "List workers, equipment, position requirements, production plan and shift history",
}

var catalogWorkersCmd = &cobra.Command{
	Use:   "workers",
	Short: "List workers with their ranks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CatalogAdapter().Workers(context.Background())
	},
}

var catalogEquipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "List machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CatalogAdapter().Equipment(context.Background())
	},
}

var catalogRequirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "List position requirements per machine type",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CatalogAdapter().Requirements(context.Background())
	},
}

var catalogPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the production plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		return wire.CatalogAdapter().Plan(context.Background(), week)
	},
}

var catalogHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List the shift history",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		return wire.CatalogAdapter().History(context.Background(), week)
	},
}

// CatalogCmd returns the catalog command
func CatalogCmd() *cobra.Command {
	catalogPlanCmd.Flags().IntP("week", "w", 0, "Only show this week")
	catalogHistoryCmd.Flags().IntP("week", "w", 0, "Only show this week")

	catalogCmd.AddCommand(catalogWorkersCmd)
	catalogCmd.AddCommand(catalogEquipmentCmd)
	catalogCmd.AddCommand(catalogRequirementsCmd)
	catalogCmd.AddCommand(catalogPlanCmd)
	catalogCmd.AddCommand(catalogHistoryCmd)

	return catalogCmd
}
