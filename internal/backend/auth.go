package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := c.post(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var result domain.AuthResult
	err := c.post(ctx, "/auth/login", domain.LoginRequest{Username: username, Password: password}, &result)
	if StatusCode(err) == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
