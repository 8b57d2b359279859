package cli

import (
	"fmt"
	"io"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/spf13/cobra"
)

func NewAuthCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and out",
	}

	cmd.AddCommand(newRegisterCommand(opts), newLoginCommand(opts), newLogoutCommand(opts), newWhoamiCommand(opts))
	return cmd
}

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var req domain.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				customer, err := a.Session.SignUp(cmd.Context(), req)
				if err != nil {
					return err
				}
				return out.Emit(customer, func(w io.Writer) { writeCustomer(w, customer) })
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Address, "address", "", "street address")
	cmd.Flags().StringVar(&req.Zipcode, "zipcode", "", "zip code")
	cmd.Flags().StringVar(&req.CityID, "city", "", "city id")
	for _, name := range []string{"name", "username", "password", "address", "zipcode"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				customer, err := a.Session.SignIn(cmd.Context(), args[0], password)
				if err != nil {
					return err
				}
				return out.Emit(customer, func(w io.Writer) { writeCustomer(w, customer) })
			})
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				if err := a.Session.SignOut(cmd.Context()); err != nil {
					return err
				}
				return out.Emit(nil, func(w io.Writer) { fmt.Fprintln(w, "Signed out.") })
			})
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, out *OutputFormatter) error {
				customer := a.Session.Customer()
				return out.Emit(customer, func(w io.Writer) { writeCustomer(w, customer) })
			})
		},
	}
}
