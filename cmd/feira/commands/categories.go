package commands

import (
	"agrofeira/cmd/feira/output"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage product categories",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			_, err := a.requireSession()
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.client().ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				output.Info(cmd.OutOrStdout(), "No categories yet")
				return nil
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{c.ID, c.Name})
			}
			output.Table(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.client().CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Created category %s (%s)", category.Name, category.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.client().UpdateCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Renamed category to %s", category.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and every product in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Deleted category %s", args[0])
			return nil
		},
	})
	return cmd
}
