package http

import (
	"context"
	"net/http"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	applog "github.com/WilliamClf/ecommerce-shop/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ctxKey string

const customerKey ctxKey = "customer"

// RequestIDMiddleware echoes the request id chi assigned (or the caller sent) back to the caller.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one structured access log line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				applog.WithTrace(r.Context(), logger).Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// RequireCustomer rejects requests made while nobody is signed in and puts the
// signed-in customer into the request context.
func RequireCustomer(session Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customer := session.Customer()
			if customer == nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
				return
			}
			ctx := context.WithValue(r.Context(), customerKey, customer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func customerFromContext(ctx context.Context) *domain.Customer {
	if customer, ok := ctx.Value(customerKey).(*domain.Customer); ok {
		return customer
	}
	return nil
}
