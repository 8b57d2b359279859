// Package auth keeps the signed-in customer and the opaque token the backend issued.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/storage"
	"go.uber.org/zap"
)

const (
	TokenKey    = "auth-token"
	CustomerKey = "customer"
)

// Backend is the subset of the backend client the session needs.
type Backend interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
}

type Session struct {
	mu       sync.RWMutex
	token    string
	customer *domain.Customer

	kv      storage.KV
	backend Backend
	logger  *zap.Logger
}

// NewSession restores a previous sign-in. Both keys must be present and the customer
// must decode, otherwise the session starts signed out.
func NewSession(ctx context.Context, kv storage.KV, b Backend, logger *zap.Logger) *Session {
	s := &Session{kv: kv, backend: b, logger: logger}

	token, err := kv.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to restore auth token", zap.Error(err))
		}
		return s
	}
	raw, err := kv.Get(ctx, CustomerKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to restore customer", zap.Error(err))
		}
		return s
	}

	var customer domain.Customer
	if err := json.Unmarshal(raw, &customer); err != nil || customer.ID == "" {
		logger.Warn("stored customer is unreadable, signing out", zap.Error(err))
		return s
	}

	s.token = string(token)
	s.customer = &customer
	return s
}

func (s *Session) SignUp(ctx context.Context, req domain.RegisterRequest) (*domain.Customer, error) {
	result, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

func (s *Session) SignIn(ctx context.Context, username, password string) (*domain.Customer, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

// SignOut forgets the customer even if the stored keys cannot be removed.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.customer = nil

	var errs []error
	for _, key := range []string{TokenKey, CustomerKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Customer returns a copy of the signed-in customer, or nil.
func (s *Session) Customer() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer != nil
}

func (s *Session) establish(ctx context.Context, result *domain.AuthResult) (*domain.Customer, error) {
	raw, err := json.Marshal(result.Customer)
	if err != nil {
		return nil, fmt.Errorf("marshal customer failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, TokenKey, []byte(result.Token)); err != nil {
		return nil, fmt.Errorf("save auth token: %w", err)
	}
	if err := s.kv.Set(ctx, CustomerKey, raw); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	customer := result.Customer
	s.token = result.Token
	s.customer = &customer
	s.logger.Info("customer signed in", zap.String("customer_id", customer.ID))

	c := customer
	return &c, nil
}
