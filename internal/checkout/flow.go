// Package checkout turns the cart into a backend order, one submission at a time.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/events"
	"github.com/WilliamClf/ecommerce-shop/internal/pricing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/WilliamClf/ecommerce-shop/internal/checkout")

// Cart is the part of the cart store checkout reads and resets.
type Cart interface {
	Lines() []domain.CartLine
	TotalPrice() float64
	TotalItemCount() int
	RemoveOrdered(ctx context.Context, ordered []domain.CartLine)
	ClosePanel()
}

type Identity interface {
	Customer() *domain.Customer
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

// Shipping is free for every order.
const Shipping = 0.0

type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	Shipping    float64 `json:"shipping"`
	Total       float64 `json:"total"`
	PayNowTotal float64 `json:"payNowTotal"`
	Savings     float64 `json:"savings"`
	ItemCount   int     `json:"itemCount"`
}

type Flow struct {
	cart      Cart
	identity  Identity
	orders    OrderCreator
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time

	inFlight atomic.Bool

	mu     sync.RWMutex
	status Status
}

func NewFlow(cart Cart, identity Identity, orders OrderCreator, publisher events.Publisher, logger *zap.Logger) *Flow {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Flow{
		cart:      cart,
		identity:  identity,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		status:    Status{State: StateIdle},
	}
}

func (f *Flow) Summary() Summary {
	subtotal := f.cart.TotalPrice()
	total := subtotal + Shipping
	quote := pricing.QuoteCart(total)
	return Summary{
		Subtotal:    subtotal,
		Shipping:    Shipping,
		Total:       total,
		PayNowTotal: quote.PayNowTotal,
		Savings:     quote.Savings,
		ItemCount:   f.cart.TotalItemCount(),
	}
}

func (f *Flow) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// Submit sends the cart as a single order. While a submission is running further calls
// fail with ErrSubmissionInFlight. On success the ordered lines leave the cart and the panel closes;
// on failure the cart is left untouched so the shopper can retry.
func (f *Flow) Submit(ctx context.Context) (*domain.Order, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer f.inFlight.Store(false)

	customer := f.identity.Customer()
	if customer == nil {
		return nil, ErrNotAuthenticated
	}
	lines := f.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	f.setStatus(Status{State: StateSubmitting, Submitting: true})

	ctx, span := tracer.Start(ctx, "checkout.submit")
	defer span.End()

	req := buildOrderRequest(customer.ID, lines)
	span.SetAttributes(attribute.Int("order.items", len(req.Items)), attribute.Float64("order.total", req.Total))

	order, err := f.orders.CreateOrder(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order failed")
		f.logger.Error("failed to create order",
			zap.String("customer_id", customer.ID), zap.Int("items", len(req.Items)), zap.Error(err))
		f.setStatus(Status{State: StateFailed, Error: err.Error()})
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	f.cart.RemoveOrdered(ctx, lines)
	f.cart.ClosePanel()
	f.setStatus(Status{State: StateSucceeded, OrderID: order.ID})
	span.SetAttributes(attribute.String("order.id", order.ID))
	f.logger.Info("order placed", zap.String("order_id", order.ID), zap.String("customer_id", customer.ID),
		zap.Float64("total", req.Total))

	event := events.NewOrderPlaced(order, req, f.now())
	if err := f.publisher.PublishOrderPlaced(ctx, event); err != nil {
		f.logger.Warn("failed to publish order placed event", zap.String("order_id", order.ID), zap.Error(err))
	}

	return order, nil
}

func (f *Flow) setStatus(s Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

func buildOrderRequest(customerID string, lines []domain.CartLine) domain.OrderRequest {
	items := make([]domain.OrderItemRequest, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		items = append(items, domain.OrderItemRequest{
			Product:  domain.EntityRef{ID: line.Product.ID},
			Quantity: line.Quantity,
			Value:    line.Product.Price.Float64(),
		})
		total += line.Subtotal
	}
	return domain.OrderRequest{
		Customer: domain.EntityRef{ID: customerID},
		Shipping: Shipping,
		Status:   domain.OrderStatusNew,
		Total:    total + Shipping,
		Items:    items,
	}
}
