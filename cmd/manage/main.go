package main

import (
	"os"

	"github.com/AyaBm214/PremiumConnect/cmd/manage/cmd"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "manage",
		Short:        "Operational tools for PremiumConnect",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.AdminCmd())
	rootCmd.AddCommand(cmd.PropertyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
