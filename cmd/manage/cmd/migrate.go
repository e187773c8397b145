package cmd

import (
	"database/sql"
	"fmt"

	"github.com/AyaBm214/PremiumConnect/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			return printVersion(cmd, database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			err = db.MigrateDown(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			return printVersion(cmd, database.DB, cfg.DBDriver)
		},
	})

	return cmd
}

func printVersion(cmd *cobra.Command, database *sql.DB, driver string) error {
	version, err := db.Version(database, driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
