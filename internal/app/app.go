// Package app wires the storefront components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/WilliamClf/ecommerce-shop/internal/auth"
	"github.com/WilliamClf/ecommerce-shop/internal/backend"
	"github.com/WilliamClf/ecommerce-shop/internal/cart"
	"github.com/WilliamClf/ecommerce-shop/internal/catalog"
	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"github.com/WilliamClf/ecommerce-shop/internal/config"
	"github.com/WilliamClf/ecommerce-shop/internal/events"
	storefronthttp "github.com/WilliamClf/ecommerce-shop/internal/http"
	"github.com/WilliamClf/ecommerce-shop/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	KV        storage.KV
	Backend   *backend.Client
	Cart      *cart.Store
	Session   *auth.Session
	Catalog   *catalog.Service
	Checkout  *checkout.Flow
	Publisher events.Publisher

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	a.KV = kv
	a.closers = append(a.closers, kv.Close)

	var cache catalog.ProductCache = catalog.NopCache{}
	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			// the catalog works without a cache
			logger.Warn("product cache unavailable, continuing without it",
				zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
			_ = client.Close()
		} else {
			cache = catalog.NewRedisCache(client)
			a.closers = append(a.closers, client.Close)
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		a.Publisher = events.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
	} else {
		a.Publisher = events.NopPublisher{}
	}
	a.closers = append(a.closers, a.Publisher.Close)

	a.Backend = backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.Named("backend"))
	a.Cart = cart.NewStore(ctx, cart.NewKVStorage(kv), logger.Named("cart"))
	a.Session = auth.NewSession(ctx, kv, a.Backend, logger.Named("auth"))
	a.Catalog = catalog.NewService(a.Backend, cache, logger.Named("catalog"))
	a.Checkout = checkout.NewFlow(a.Cart, a.Session, a.Backend, a.Publisher, logger.Named("checkout"))

	return a, nil
}

func (a *App) Handler() http.Handler {
	return storefronthttp.NewRouter(storefronthttp.Deps{
		Cart:               a.Cart,
		Products:           a.Catalog,
		Session:            a.Session,
		Checkout:           a.Checkout,
		Favorites:          a.Backend,
		Logger:             a.Logger.Named("http"),
		RequestTimeout:     a.Config.HTTP.RequestTimeout,
		MaxRequestBodySize: a.Config.HTTP.MaxRequestBodySize,
	})
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
