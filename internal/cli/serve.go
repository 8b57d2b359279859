package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app.App, _ *OutputFormatter) error {
				if port != "" {
					a.Config.HTTP.Port = port
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return serve(ctx, a)
			})
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (overrides config)")
	return cmd
}

func serve(ctx context.Context, a *app.App) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.HTTP.Port,
		Handler:      a.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.Config.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("storefront starting", zap.String("addr", srv.Addr),
			zap.String("backend", a.Config.Backend.URL), zap.String("storage", a.Config.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Logger.Info("server exited")
	return nil
}
