package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WilliamClf/ecommerce-shop/internal/backend"
	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps domain and backend errors to HTTP answers.
func handleError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string
	message := err.Error()

	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		httpStatus, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, checkout.ErrNotAuthenticated):
		httpStatus, code = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, backend.ErrProductNotFound):
		httpStatus, code = http.StatusNotFound, "not_found"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		httpStatus, code = http.StatusConflict, "submission_in_flight"
	case errors.Is(err, backend.ErrUnavailable):
		httpStatus, code = http.StatusServiceUnavailable, "service_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus, code = http.StatusGatewayTimeout, "timeout"
	default:
		status := backend.StatusCode(err)
		switch {
		case status >= 400 && status < 500:
			httpStatus, code = status, "backend_rejected"
		case status >= 500:
			httpStatus, code = http.StatusBadGateway, "backend_error"
		default:
			httpStatus, code = http.StatusInternalServerError, "internal_error"
			message = "internal server error"
		}
	}

	respondError(w, httpStatus, code, message)
}
