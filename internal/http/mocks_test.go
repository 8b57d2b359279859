package http

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/backend"
	"github.com/WilliamClf/ecommerce-shop/internal/cart"
	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/storage"
	"go.uber.org/zap"
)

type ProductSourceMock struct {
	products []domain.Product
	err      error
}

func (m ProductSourceMock) ListProducts(_ context.Context, categoryID string) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		if categoryID == "" || (p.Category != nil && p.Category.ID == categoryID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m ProductSourceMock) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, backend.ErrProductNotFound
}

type SessionMock struct {
	m        sync.RWMutex
	customer *domain.Customer
	err      error
}

func (s *SessionMock) SignUp(_ context.Context, req domain.RegisterRequest) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.customer = &domain.Customer{ID: "c-new", Name: req.Name, Username: req.Username}
	return s.customer, nil
}

func (s *SessionMock) SignIn(_ context.Context, username, password string) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	if password != "secret" {
		return nil, backend.ErrInvalidCredentials
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.customer = &domain.Customer{ID: "c-1", Name: "Maria", Username: username}
	return s.customer, nil
}

func (s *SessionMock) SignOut(context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.customer = nil
	return nil
}

func (s *SessionMock) Customer() *domain.Customer {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.customer
}

type CheckoutFlowMock struct {
	order   *domain.Order
	err     error
	summary checkout.Summary
	status  checkout.Status
}

func (m CheckoutFlowMock) Submit(context.Context) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m CheckoutFlowMock) Summary() checkout.Summary { return m.summary }
func (m CheckoutFlowMock) Status() checkout.Status   { return m.status }

type FavoritesMock struct {
	favorites  []domain.Favorite
	err        error
	customerID string
}

func (m *FavoritesMock) ListFavorites(_ context.Context, customerID string) ([]domain.Favorite, error) {
	m.customerID = customerID
	return m.favorites, m.err
}

func (m *FavoritesMock) ToggleFavorite(_ context.Context, customerID, productID string) (*domain.FavoriteToggle, error) {
	m.customerID = customerID
	if m.err != nil {
		return nil, m.err
	}
	for _, f := range m.favorites {
		if f.Product.ID == productID {
			return &domain.FavoriteToggle{Removed: true}, nil
		}
	}
	return &domain.FavoriteToggle{Added: true}, nil
}

var testProducts = []domain.Product{
	{ID: "p-1", Name: "Shirt", Price: 20, Category: &domain.Category{ID: "clothes"}},
	{ID: "p-2", Name: "Sneaker", Price: 100, Category: &domain.Category{ID: "shoes"}},
}

func newTestCart(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(context.Background(), cart.NewKVStorage(storage.NewMemoryStore()), zap.NewNop())
}

type testEnv struct {
	cart      *cart.Store
	session   *SessionMock
	favorites *FavoritesMock
	flow      CheckoutFlowMock
}

func newTestDeps(t *testing.T, env *testEnv) Deps {
	t.Helper()
	if env.cart == nil {
		env.cart = newTestCart(t)
	}
	if env.session == nil {
		env.session = &SessionMock{}
	}
	if env.favorites == nil {
		env.favorites = &FavoritesMock{}
	}
	return Deps{
		Cart:           env.cart,
		Products:       ProductSourceMock{products: testProducts},
		Session:        env.session,
		Checkout:       env.flow,
		Favorites:      env.favorites,
		Logger:         zap.NewNop(),
		RequestTimeout: 5 * time.Second,
	}
}
