package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

// ListProducts returns the catalog, filtered by category when categoryID is set.
func (c *Client) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var query url.Values
	if categoryID != "" {
		query = url.Values{"categoryId": {categoryID}}
	}

	var products []domain.Product
	if err := c.get(ctx, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &product)
	if StatusCode(err) == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	// some backends answer 200 with an empty body for unknown ids
	if product.ID == "" {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
