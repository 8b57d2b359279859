package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type CartStore interface {
	AddLine(ctx context.Context, product domain.Product)
	RemoveLine(ctx context.Context, productID string)
	SetQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)
	Lines() []domain.CartLine
	TotalItemCount() int
	TotalPrice() float64
	OpenPanel()
	ClosePanel()
	IsPanelOpen() bool
	Snapshot() domain.CartState
}

type ProductSource interface {
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	cart     CartStore
	products ProductSource
	timeout  time.Duration
}

func NewCartHandler(cart CartStore, products ProductSource, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:     cart,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CartLineDTO struct {
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	ImageURL          string  `json:"image_url,omitempty"`
	UnitPrice         float64 `json:"unit_price"`
	Quantity          int     `json:"quantity"`
	Subtotal          float64 `json:"subtotal"`
	SubtotalFormatted string  `json:"subtotal_formatted"`
}

type CartResponseDTO struct {
	Lines          []CartLineDTO     `json:"lines"`
	TotalItemCount int               `json:"total_item_count"`
	TotalPrice     float64           `json:"total_price"`
	Quote          pricing.CartQuote `json:"quote"`
	TotalFormatted string            `json:"total_formatted"`
	IsPanelOpen    bool              `json:"is_panel_open"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.cart.AddLine(ctx, *product)
	respondJSON(w, http.StatusCreated, h.view())
}

// PUT /api/v1/cart/items/{product_id}. A quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	h.cart.SetQuantity(r.Context(), productID, *req.Quantity)
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	h.cart.RemoveLine(r.Context(), productID)
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) OpenPanel(w http.ResponseWriter, r *http.Request) {
	h.cart.OpenPanel()
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) ClosePanel(w http.ResponseWriter, r *http.Request) {
	h.cart.ClosePanel()
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) view() CartResponseDTO {
	state := h.cart.Snapshot()
	dto := CartResponseDTO{
		Lines:          make([]CartLineDTO, len(state.Lines)),
		TotalItemCount: state.TotalItemCount(),
		TotalPrice:     state.TotalPrice(),
		IsPanelOpen:    state.IsPanelOpen,
	}
	for i, line := range state.Lines {
		dto.Lines[i] = CartLineDTO{
			ProductID:         line.Product.ID,
			Name:              line.Product.Name,
			ImageURL:          line.Product.ImageURL,
			UnitPrice:         line.Product.Price.Float64(),
			Quantity:          line.Quantity,
			Subtotal:          line.Subtotal,
			SubtotalFormatted: pricing.Format(line.Subtotal),
		}
	}
	dto.Quote = pricing.QuoteCart(dto.TotalPrice)
	dto.TotalFormatted = pricing.Format(dto.TotalPrice)
	return dto
}
