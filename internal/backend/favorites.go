package backend

import (
	"context"
	"net/url"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

func (c *Client) ListFavorites(ctx context.Context, customerID string) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	if err := c.get(ctx, "/favorites", url.Values{"customerId": {customerID}}, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// ToggleFavorite adds the product to the customer's favorites, or removes it when it
// is already there.
func (c *Client) ToggleFavorite(ctx context.Context, customerID, productID string) (*domain.FavoriteToggle, error) {
	var result domain.FavoriteToggle
	req := domain.FavoriteRequest{CustomerID: customerID, ProductID: productID}
	if err := c.post(ctx, "/favorites", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
