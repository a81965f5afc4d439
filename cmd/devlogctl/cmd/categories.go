package cmd

import (
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List post categories in display order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := newClient().ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), cats)
			}
			return printCategoriesTable(cmd.OutOrStdout(), cats)
		},
	}
}
