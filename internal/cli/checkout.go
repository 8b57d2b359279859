package cli

import (
	"io"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/spf13/cobra"
)

func NewCheckoutCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Review and place the order",
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show what the order would cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				s, st := a.Checkout.Summary(), a.Checkout.Status()
				data := map[string]interface{}{"summary": s, "status": st}
				return out.Emit(data, func(w io.Writer) { writeSummary(w, s, st) })
			})
		},
	}

	submit := &cobra.Command{
		Use:   "submit",
		Short: "Place the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				order, err := a.Checkout.Submit(cmd.Context())
				if err != nil {
					return err
				}
				return out.Emit(order, func(w io.Writer) { writeOrder(w, *order) })
			})
		},
	}

	cmd.AddCommand(summary, submit)
	return cmd
}
