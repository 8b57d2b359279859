package cli

import (
	"io"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/spf13/cobra"
)

func NewProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				products, err := a.Catalog.ListProducts(cmd.Context(), category)
				if err != nil {
					return err
				}
				return out.Emit(products, func(w io.Writer) { writeProducts(w, products) })
			})
		},
	}
	list.Flags().StringVar(&category, "category", "", "only list products of this category id")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show a product with its prices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				product, err := a.Catalog.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return out.Emit(product, func(w io.Writer) { writeProduct(w, *product) })
			})
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
