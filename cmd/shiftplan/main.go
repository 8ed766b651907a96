package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/shiftplan/internal/cli"
	"github.com/example/shiftplan/internal/version"
	"github.com/example/shiftplan/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "shiftplan",
		Short:   "shiftplan - weekly shift scheduler for machine teams",
		Version: version.String(),
		Long: `shiftplan rotates workers through night, day and evening shifts and
staffs the machines planned for each week with qualified teams.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			dir, _ := cmd.Flags().GetString("config-dir")
			wire.SetConfigDir(dir)
		},
	}
	rootCmd.PersistentFlags().String("config-dir", ".", "Directory searched first for shiftplan.yaml")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.CatalogCmd())
	rootCmd.AddCommand(cli.ScheduleCmd())
	rootCmd.AddCommand(cli.RunsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
