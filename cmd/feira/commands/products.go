package commands

import (
	"fmt"

	"agrofeira/cmd/feira/output"
	"agrofeira/pkg/client"

	"github.com/spf13/cobra"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse and manage products",
	}
	cmd.AddCommand(
		newProductsListCmd(a),
		newProductsShowCmd(a),
		newProductsSaveCmd(a),
		newProductsDeleteCmd(a),
	)
	return cmd
}

func newProductsListCmd(a *app) *cobra.Command {
	var search, categoryID string
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q client.ProductQuery
			if mine {
				user, err := a.requireSession()
				if err != nil {
					return err
				}
				q.ProducerID = user.ID
			}
			products, err := a.client().ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}

			products = client.FilterProducts(products, search, categoryID)
			if len(products) == 0 {
				output.Info(cmd.OutOrStdout(), "No products found")
				return nil
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				category, producer := "", ""
				if p.Category != nil {
					category = p.Category.Name
				}
				if p.Producer != nil {
					producer = p.Producer.Name
				}
				rows = append(rows, []string{
					p.ID,
					p.Name,
					p.Price.StringFixed(2) + "/" + p.MeasurementUnit,
					p.StockQuantity.String(),
					category,
					producer,
				})
			}
			output.Table(cmd.OutOrStdout(), []string{"ID", "NAME", "PRICE", "STOCK", "CATEGORY", "PRODUCER"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only products whose name contains this text")
	cmd.Flags().StringVar(&categoryID, "category", "", "Only products in this category id")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only your own products")
	return cmd
}

func newProductsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client().GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			output.Section(w, p.Name)
			output.Field(w, "ID", p.ID)
			output.Field(w, "Description", p.Description)
			output.Field(w, "Price", fmt.Sprintf("%s per %s", p.Price.StringFixed(2), p.MeasurementUnit))
			output.Field(w, "Stock", fmt.Sprintf("%s %s", p.StockQuantity.String(), p.MeasurementUnit))
			output.Field(w, "Unit details", p.UnitDetails)
			output.Field(w, "Image", p.ImageURL)
			if p.Category != nil {
				output.Field(w, "Category", p.Category.Name)
			}
			if p.Producer != nil {
				output.Field(w, "Producer", p.Producer.Name)
				output.Field(w, "Establishment", p.Producer.EstablishmentName)
				output.Field(w, "Contact", p.Producer.Phone+" / "+p.Producer.Email)
			}
			return nil
		},
	}
}

func newProductsSaveCmd(a *app) *cobra.Command {
	var id string
	var values client.ProductForm
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a product, or edit one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			form, err := client.LoadProductForm(cmd.Context(), a.client(), id)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			set := func(flag string, dst *string, v string) {
				if f.Changed(flag) {
					*dst = v
				}
			}
			set("name", &form.Name, values.Name)
			set("description", &form.Description, values.Description)
			set("price", &form.Price, values.Price)
			set("stock", &form.StockQuantity, values.StockQuantity)
			set("unit", &form.MeasurementUnit, values.MeasurementUnit)
			set("unit-details", &form.UnitDetails, values.UnitDetails)
			set("image", &form.ImageURL, values.ImageURL)
			set("category", &form.CategoryID, values.CategoryID)

			product, err := form.Submit(cmd.Context(), a.client())
			if err != nil {
				return err
			}
			if form.IsEditing() {
				output.Success(cmd.OutOrStdout(), "Updated product %s (%s)", product.Name, product.ID)
			} else {
				output.Success(cmd.OutOrStdout(), "Created product %s (%s)", product.Name, product.ID)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&id, "id", "", "Id of the product to edit")
	fl.StringVar(&values.Name, "name", "", "Product name")
	fl.StringVar(&values.Description, "description", "", "Description")
	fl.StringVar(&values.Price, "price", "", "Price per measurement unit, e.g. 12.50")
	fl.StringVar(&values.StockQuantity, "stock", "", "Stock, in measurement units")
	fl.StringVar(&values.MeasurementUnit, "unit", "", "Measurement unit, e.g. kg or cx")
	fl.StringVar(&values.UnitDetails, "unit-details", "", "What one unit holds, e.g. 'box with 20kg'")
	fl.StringVar(&values.ImageURL, "image", "", "Image URL")
	fl.StringVar(&values.CategoryID, "category", "", "Category id")
	return cmd
}

func newProductsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			if err := a.client().DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Deleted product %s", args[0])
			return nil
		},
	}
}
