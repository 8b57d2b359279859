package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

type Favorites interface {
	ListFavorites(ctx context.Context, customerID string) ([]domain.Favorite, error)
	ToggleFavorite(ctx context.Context, customerID, productID string) (*domain.FavoriteToggle, error)
}

type FavoritesHandler struct {
	favorites Favorites
	timeout   time.Duration
}

func NewFavoritesHandler(favorites Favorites, timeout time.Duration) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, timeout: timeout}
}

type ToggleFavoriteRequestDTO struct {
	ProductID string `json:"product_id"`
}

type FavoritesResponse struct {
	Products []ProductResponse `json:"products"`
}

// GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customer := customerFromContext(r.Context())
	if customer == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
		return
	}

	favorites, err := h.favorites.ListFavorites(ctx, customer.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	products := make([]ProductResponse, len(favorites))
	for i, f := range favorites {
		products[i] = toProductResponse(f.Product)
	}
	respondJSON(w, http.StatusOK, FavoritesResponse{Products: products})
}

// POST /api/v1/favorites
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customer := customerFromContext(r.Context())
	if customer == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
		return
	}

	var req ToggleFavoriteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	result, err := h.favorites.ToggleFavorite(ctx, customer.ID, req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
