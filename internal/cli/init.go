package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/shiftplan/internal/config"
	"github.com/example/shiftplan/internal/db"
	"github.com/example/shiftplan/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the shiftplan database and config",
		Long: `Initialize the shiftplan database with the required schema and write a
default shiftplan.yaml to ~/.shiftplan when none exists.

With --seed, a small demo catalog is loaded so that the given week can be
scheduled right away.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seedWeek, _ := cmd.Flags().GetInt("seed")
			cfg := wire.Config()

			if err := initConfigFile(cfg); err != nil {
				return err
			}

			fmt.Printf("Initializing shiftplan database at %s\n", cfg.Database)
			database, err := db.GetDB(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if seedWeek != 0 {
				if err := db.SeedFixtures(database, seedWeek); err != nil {
					return fmt.Errorf("failed to seed demo catalog: %w", err)
				}
				fmt.Printf("✓ Demo catalog loaded for week %d\n", seedWeek)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  shiftplan import --dir ./data")
			fmt.Println("  shiftplan schedule run --save")

			return nil
		},
	}
	cmd.Flags().Int("seed", 0, "Load a demo catalog planned for this week")
	return cmd
}

// initConfigFile writes the config to ~/.shiftplan unless a file exists.
func initConfigFile(cfg *config.Config) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dataDir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists, skip
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config: %w", err)
	}

	if err := config.SaveConfig(dataDir, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("✓ Config file created at %s\n", path)
	return nil
}
