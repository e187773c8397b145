package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/spf13/cobra"
)

func PropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Inspect and publish properties",
	}

	cmd.AddCommand(propertyActivateCmd())
	cmd.AddCommand(propertyListCmd())
	return cmd
}

func propertyActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Publish a property that is pending review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			properties := service.NewPropertyService(repository.NewPropertyRepository(database), nil)
			p, err := properties.Activate(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.DisplayName(), p.Status)
			return nil
		},
	}
}

func propertyListCmd() *cobra.Command {
	var owner, status string

	c := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			repo := repository.NewPropertyRepository(database)
			filter := repository.PropertyFilter{OwnerID: owner, Status: model.PropertyStatus(status)}
			list, err := repo.Query(context.Background(), filter, repository.OrderUpdatedDesc)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSTEP\tPROGRESS\tUPDATED")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d%%\t%s\n",
					p.ID, p.DisplayName(), p.Status, p.CurrentStep, p.TotalSteps, p.Progress,
					p.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	c.Flags().StringVar(&owner, "owner", "", "only properties of this owner id")
	c.Flags().StringVar(&status, "status", "", "only properties with this status")
	return c
}
