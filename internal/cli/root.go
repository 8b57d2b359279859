// Package cli is the storefront command line.
package cli

import (
	"context"
	"fmt"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/WilliamClf/ecommerce-shop/internal/config"
	"github.com/WilliamClf/ecommerce-shop/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"

	// OpenApp builds the storefront for a command. Tests replace it.
	OpenApp func(ctx context.Context, opts *RootOptions) (*app.App, error)
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenApp: openApp})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront for the e-commerce backend",
		Long:  "Browse products, keep a cart and place orders against the e-commerce backend.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewAuthCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewFavoritesCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func openApp(ctx context.Context, opts *RootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return app.New(ctx, cfg, log)
}

// withApp opens the storefront, runs fn and closes it again.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(a *app.App, out *OutputFormatter) error) error {
	a, err := opts.OpenApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger.Warn("failed to close storefront", zap.Error(err))
		}
	}()
	return fn(a, &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()})
}
