package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidlike/internal/config"
	"github.com/Taichi-iskw/vidlike/migrations"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
	Long:  `Apply or roll back the embedded PostgreSQL migrations. SQLite and memory stores need no migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := postgresURL()
		if err != nil {
			return err
		}

		if err := migrations.Up(databaseURL); err != nil {
			return err
		}

		version, dirty, err := migrations.Version(databaseURL)
		if err != nil {
			return err
		}
		cmd.Printf("Schema is at version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := postgresURL()
		if err != nil {
			return err
		}

		if err := migrations.Down(databaseURL); err != nil {
			return err
		}
		cmd.Println("All migrations rolled back")
		return nil
	},
}

// postgresURL loads the configured database URL and checks it targets PostgreSQL
func postgresURL() (string, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	driver, err := cfg.Driver()
	if err != nil {
		return "", err
	}
	if driver != config.DriverPostgres {
		return "", fmt.Errorf("migrations only apply to PostgreSQL, configured driver is %s", driver)
	}
	return cfg.DatabaseURL, nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
