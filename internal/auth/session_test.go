package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/WilliamClf/ecommerce-shop/internal/backend"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockBackend struct {
	result *domain.AuthResult
	err    error
	last   domain.RegisterRequest
}

func (m *mockBackend) Register(_ context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	m.last = req
	return m.result, m.err
}

func (m *mockBackend) Login(_ context.Context, username, password string) (*domain.AuthResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if username != m.result.Customer.Username || password != "secret" {
		return nil, backend.ErrInvalidCredentials
	}
	return m.result, nil
}

type failingKV struct {
	storage.KV
	err error
}

func (f failingKV) Set(context.Context, string, []byte) error { return f.err }
func (f failingKV) Delete(context.Context, string) error      { return f.err }

var maria = &domain.AuthResult{
	Token:    "c-1",
	Customer: domain.Customer{ID: "c-1", Name: "Maria", Username: "maria", Zipcode: "85000-000"},
}

func TestSignIn_PersistsTokenAndCustomer(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	s := NewSession(ctx, kv, &mockBackend{result: maria}, zap.NewNop())
	require.False(t, s.SignedIn())

	customer, err := s.SignIn(ctx, "maria", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Maria", customer.Name)
	assert.True(t, s.SignedIn())
	assert.Equal(t, "c-1", s.Token())

	token, err := kv.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "c-1", string(token))
	raw, err := kv.Get(ctx, CustomerKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c-1","name":"Maria","username":"maria","zipcode":"85000-000"}`, string(raw))
}

func TestSignIn_WrongPasswordStaysSignedOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := NewSession(context.Background(), kv, &mockBackend{result: maria}, zap.NewNop())

	_, err := s.SignIn(context.Background(), "maria", "nope")
	assert.ErrorIs(t, err, backend.ErrInvalidCredentials)
	assert.False(t, s.SignedIn())
	assert.Nil(t, s.Customer())

	_, err = kv.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSignUp(t *testing.T) {
	b := &mockBackend{result: maria}
	s := NewSession(context.Background(), storage.NewMemoryStore(), b, zap.NewNop())

	req := domain.RegisterRequest{Name: "Maria", Username: "maria", Password: "secret", Address: "Rua A", Zipcode: "85000-000"}
	customer, err := s.SignUp(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "c-1", customer.ID)
	assert.Equal(t, req, b.last)
	assert.True(t, s.SignedIn())
}

func TestSignUp_BackendError(t *testing.T) {
	b := &mockBackend{err: &backend.APIError{StatusCode: 400, Message: "Username já está em uso"}}
	s := NewSession(context.Background(), storage.NewMemoryStore(), b, zap.NewNop())

	_, err := s.SignUp(context.Background(), domain.RegisterRequest{Username: "maria"})
	assert.Equal(t, 400, backend.StatusCode(err))
	assert.False(t, s.SignedIn())
}

func TestSignIn_StorageFailure(t *testing.T) {
	kv := failingKV{KV: storage.NewMemoryStore(), err: errors.New("disk full")}
	s := NewSession(context.Background(), kv, &mockBackend{result: maria}, zap.NewNop())

	_, err := s.SignIn(context.Background(), "maria", "secret")
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, s.SignedIn())
}

func TestSession_RestoredAfterRestart(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	first := NewSession(ctx, kv, &mockBackend{result: maria}, zap.NewNop())
	_, err := first.SignIn(ctx, "maria", "secret")
	require.NoError(t, err)

	second := NewSession(ctx, kv, &mockBackend{}, zap.NewNop())
	assert.True(t, second.SignedIn())
	assert.Equal(t, "c-1", second.Token())
	assert.Equal(t, "Maria", second.Customer().Name)
}

func TestSession_CorruptCustomerMeansSignedOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, TokenKey, []byte("c-1")))
	require.NoError(t, kv.Set(ctx, CustomerKey, []byte("{not-json")))

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSession(ctx, kv, &mockBackend{}, zap.New(core))

	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, logs.FilterMessage("stored customer is unreadable, signing out").Len())
}

func TestSession_TokenWithoutCustomerMeansSignedOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), TokenKey, []byte("c-1")))

	s := NewSession(context.Background(), kv, &mockBackend{}, zap.NewNop())
	assert.False(t, s.SignedIn())
}

func TestSignOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	s := NewSession(ctx, kv, &mockBackend{result: maria}, zap.NewNop())
	_, err := s.SignIn(ctx, "maria", "secret")
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx))
	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token())

	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = kv.Get(ctx, CustomerKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// signing out twice is harmless
	require.NoError(t, s.SignOut(ctx))
}

func TestSignOut_StorageFailureStillSignsOut(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, TokenKey, []byte("c-1")))
	require.NoError(t, mem.Set(ctx, CustomerKey, []byte(`{"id":"c-1","name":"Maria","username":"maria"}`)))

	s := NewSession(ctx, failingKV{KV: mem, err: errors.New("disk full")}, &mockBackend{}, zap.NewNop())
	require.True(t, s.SignedIn())

	err := s.SignOut(ctx)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, s.SignedIn())
}

func TestCustomer_ReturnsCopy(t *testing.T) {
	s := NewSession(context.Background(), storage.NewMemoryStore(), &mockBackend{result: maria}, zap.NewNop())
	_, err := s.SignIn(context.Background(), "maria", "secret")
	require.NoError(t, err)

	c := s.Customer()
	c.Name = "changed"
	assert.Equal(t, "Maria", s.Customer().Name)
}
