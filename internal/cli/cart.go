package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/spf13/cobra"
)

func NewCartCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the cart",
	}

	cmd.AddCommand(
		cartAction(opts, "show", "Show the cart", cobra.NoArgs, nil),
		cartAction(opts, "add <product-id>", "Add one unit of a product", cobra.ExactArgs(1),
			func(cmd *cobra.Command, a *app.App, args []string) error {
				product, err := a.Catalog.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				a.Cart.AddLine(cmd.Context(), *product)
				return nil
			}),
		cartAction(opts, "remove <product-id>", "Remove a product from the cart", cobra.ExactArgs(1),
			func(cmd *cobra.Command, a *app.App, args []string) error {
				a.Cart.RemoveLine(cmd.Context(), args[0])
				return nil
			}),
		cartAction(opts, "set <product-id> <quantity>", "Set the quantity of a product (0 removes it)", cobra.ExactArgs(2),
			func(cmd *cobra.Command, a *app.App, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
				a.Cart.SetQuantity(cmd.Context(), args[0], qty)
				return nil
			}),
		cartAction(opts, "clear", "Empty the cart", cobra.NoArgs,
			func(cmd *cobra.Command, a *app.App, _ []string) error {
				a.Cart.Clear(cmd.Context())
				return nil
			}),
		cartAction(opts, "open", "Open the cart panel", cobra.NoArgs,
			func(_ *cobra.Command, a *app.App, _ []string) error {
				a.Cart.OpenPanel()
				return nil
			}),
		cartAction(opts, "close", "Close the cart panel", cobra.NoArgs,
			func(_ *cobra.Command, a *app.App, _ []string) error {
				a.Cart.ClosePanel()
				return nil
			}),
	)
	return cmd
}

// cartAction builds a cart subcommand that runs change (when set) and prints the cart.
func cartAction(opts *RootOptions, use, short string, args cobra.PositionalArgs,
	change func(cmd *cobra.Command, a *app.App, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				if change != nil {
					if err := change(cmd, a, args); err != nil {
						return err
					}
				}
				view := newCartView(a.Cart.Snapshot())
				return out.Emit(view, func(w io.Writer) { writeCart(w, view) })
			})
		},
	}
}
