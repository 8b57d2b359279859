// Package catalog serves product listings and details, caching backend answers.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/backend"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Backend is the subset of the backend client the catalog needs.
type Backend interface {
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	backend Backend
	cache   ProductCache
	logger  *zap.Logger
	sfg     singleflight.Group // one backend call per key at a time
}

func NewService(b Backend, cache ProductCache, logger *zap.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{backend: b, cache: cache, logger: logger}
}

func (s *Service) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	key := listKey(categoryID)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if products, ok := s.cached(ctx, key); ok {
			return products, nil
		}

		products, err := s.backend.ListProducts(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		s.fill(key, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]domain.Product)), nil
}

// GetProduct returns backend.ErrProductNotFound for unknown ids. Misses are not cached.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if products, ok := s.cached(ctx, key); ok && len(products) == 1 {
			return products[0], nil
		}

		product, err := s.backend.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		s.fill(key, []domain.Product{*product})
		return *product, nil
	})
	if err != nil {
		return nil, err
	}
	product := v.(domain.Product)
	return &product, nil
}

// Invalidate drops the cached listing and detail entries for a product.
func (s *Service) Invalidate(ctx context.Context, product domain.Product) {
	keys := []string{productKey(product.ID), listKey("")}
	if product.Category != nil && product.Category.ID != "" {
		keys = append(keys, listKey(product.Category.ID))
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Service) cached(ctx context.Context, key string) ([]domain.Product, bool) {
	products, err := s.cache.Get(ctx, key)
	if err == nil {
		return products, true
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func (s *Service) fill(key string, products []domain.Product) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, key, products); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

func clone(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

var _ Backend = (*backend.Client)(nil)
