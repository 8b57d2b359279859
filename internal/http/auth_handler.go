package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
)

type Session interface {
	SignUp(ctx context.Context, req domain.RegisterRequest) (*domain.Customer, error)
	SignIn(ctx context.Context, username, password string) (*domain.Customer, error)
	SignOut(ctx context.Context) error
	Customer() *domain.Customer
}

type AuthHandler struct {
	session Session
	timeout time.Duration
}

func NewAuthHandler(session Session, timeout time.Duration) *AuthHandler {
	return &AuthHandler{session: session, timeout: timeout}
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Zipcode  string `json:"zipcode"`
	CityID   string `json:"city_id"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if missing := missingFields(map[string]string{
		"name": req.Name, "username": req.Username, "password": req.Password,
		"address": req.Address, "zipcode": req.Zipcode,
	}); missing != "" {
		respondError(w, http.StatusBadRequest, "missing_fields", missing+" required")
		return
	}

	customer, err := h.session.SignUp(ctx, domain.RegisterRequest{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Address:  req.Address,
		Zipcode:  req.Zipcode,
		CityID:   req.CityID,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "username and password are required")
		return
	}

	customer, err := h.session.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SignOut(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	customer := h.session.Customer()
	if customer == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func missingFields(fields map[string]string) string {
	var missing []string
	for _, name := range []string{"name", "username", "password", "address", "zipcode"} {
		if v, ok := fields[name]; ok && strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	return strings.Join(missing, ", ")
}
