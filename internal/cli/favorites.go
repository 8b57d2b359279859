package cli

import (
	"fmt"
	"io"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/spf13/cobra"
)

func NewFavoritesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List and toggle favorite products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				customer := a.Session.Customer()
				if customer == nil {
					return checkout.ErrNotAuthenticated
				}
				favorites, err := a.Backend.ListFavorites(cmd.Context(), customer.ID)
				if err != nil {
					return err
				}
				products := make([]domain.Product, len(favorites))
				for i, f := range favorites {
					products[i] = f.Product
				}
				return out.Emit(products, func(w io.Writer) { writeProducts(w, products) })
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add a product to favorites, or remove it if already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				customer := a.Session.Customer()
				if customer == nil {
					return checkout.ErrNotAuthenticated
				}
				result, err := a.Backend.ToggleFavorite(cmd.Context(), customer.ID, args[0])
				if err != nil {
					return err
				}
				return out.Emit(result, func(w io.Writer) {
					if result.Removed {
						fmt.Fprintf(w, "Removed %s from favorites.\n", args[0])
					} else {
						fmt.Fprintf(w, "Added %s to favorites.\n", args[0])
					}
				})
			})
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}
