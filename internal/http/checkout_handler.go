package http

import (
	"context"
	"net/http"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/pricing"
)

type CheckoutFlow interface {
	Submit(ctx context.Context) (*domain.Order, error)
	Summary() checkout.Summary
	Status() checkout.Status
}

type CheckoutHandler struct {
	flow    CheckoutFlow
	timeout time.Duration
}

func NewCheckoutHandler(flow CheckoutFlow, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{flow: flow, timeout: timeout}
}

type CheckoutSummaryDTO struct {
	Summary checkout.Summary  `json:"summary"`
	Status  checkout.Status   `json:"status"`
	Display map[string]string `json:"display"`
}

type OrderResponseDTO struct {
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
	Total   float64            `json:"total"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s := h.flow.Summary()
	respondJSON(w, http.StatusOK, CheckoutSummaryDTO{
		Summary: s,
		Status:  h.flow.Status(),
		Display: map[string]string{
			"subtotal":      pricing.Format(s.Subtotal),
			"shipping":      pricing.Format(s.Shipping),
			"total":         pricing.Format(s.Total),
			"pay_now_total": pricing.Format(s.PayNowTotal),
			"savings":       pricing.Format(s.Savings),
		},
	})
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.flow.Submit(ctx)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, OrderResponseDTO{
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total.Float64(),
	})
}
