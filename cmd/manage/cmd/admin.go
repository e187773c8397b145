package cmd

import (
	"context"
	"fmt"

	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/spf13/cobra"
)

func AdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff accounts",
	}

	cmd.AddCommand(adminCreateCmd())
	return cmd
}

func adminCreateCmd() *cobra.Command {
	var email, password, name string

	c := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account or promote an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			auth := service.NewAuthService(
				repository.NewUserRepository(database),
				nil,
				cfg.JWTSecret,
				cfg.IsProduction(),
				cfg.JWTExpiry,
			)

			user, err := auth.ProvisionAdmin(context.Background(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "admin email address")
	c.Flags().StringVar(&password, "password", "", "password, ignored when the user exists")
	c.Flags().StringVar(&name, "name", "", "display name")
	_ = c.MarkFlagRequired("email")

	return c
}
