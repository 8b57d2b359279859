package backend

import (
	"context"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
