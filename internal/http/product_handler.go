package http

import (
	"context"
	"net/http"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products ProductSource
	timeout  time.Duration
}

func NewProductHandler(products ProductSource, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Price       float64                `json:"price"`
	ImageURL    string                 `json:"image_url,omitempty"`
	CategoryID  string                 `json:"category_id,omitempty"`
	Quote       pricing.ProductQuote   `json:"quote"`
	Display     ProductPriceDisplayDTO `json:"display"`
}

// ProductPriceDisplayDTO carries the rounded strings a product card shows.
type ProductPriceDisplayDTO struct {
	ListPrice        string `json:"list_price"`
	InstallmentValue string `json:"installment_value"`
	PayNowPrice      string `json:"pay_now_price"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// GET /api/v1/products?categoryId=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.products.ListProducts(ctx, r.URL.Query().Get("categoryId"))
	if err != nil {
		handleError(w, err)
		return
	}

	products := make([]ProductResponse, len(res))
	for i, p := range res {
		products[i] = toProductResponse(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetProduct(ctx, chi.URLParam(r, "product_id"))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

func toProductResponse(p domain.Product) ProductResponse {
	quote := pricing.Quote(p.Price.Float64())
	res := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Float64(),
		ImageURL:    p.ImageURL,
		Quote:       quote,
		Display: ProductPriceDisplayDTO{
			ListPrice:        pricing.Format(quote.ListPrice),
			InstallmentValue: pricing.Format(quote.InstallmentValue),
			PayNowPrice:      pricing.Format(quote.PayNowPrice),
		},
	}
	if p.Category != nil {
		res.CategoryID = p.Category.ID
	}
	return res
}
