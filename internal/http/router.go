// Package http exposes the storefront over a small JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Cart      CartStore
	Products  ProductSource
	Session   Session
	Checkout  CheckoutFlow
	Favorites Favorites
	Logger    *zap.Logger

	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(d Deps) http.Handler {
	cartHandler := NewCartHandler(d.Cart, d.Products, d.RequestTimeout)
	productHandler := NewProductHandler(d.Products, d.RequestTimeout)
	authHandler := NewAuthHandler(d.Session, d.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(d.Checkout, d.RequestTimeout)
	favoritesHandler := NewFavoritesHandler(d.Favorites, d.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	if d.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(d.MaxRequestBodySize))
	}
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Post("/panel/open", cartHandler.OpenPanel)
			r.Post("/panel/close", cartHandler.ClosePanel)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Summary)
			r.Post("/", checkoutHandler.Submit)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(RequireCustomer(d.Session))
			r.Get("/", favoritesHandler.List)
			r.Post("/", favoritesHandler.Toggle)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
