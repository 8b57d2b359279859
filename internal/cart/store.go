// Package cart holds the shopper's cart: ordered line items, derived totals, the cart
// panel visibility flag and the write-through persistence of all of it.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"go.uber.org/zap"
)

// Store is the single owner of cart state. Every change to the lines is written to
// Storage before the call returns; the panel flag is presentation only.
type Store struct {
	mu        sync.RWMutex
	lines     []domain.CartLine
	panelOpen bool

	storage Storage
	logger  *zap.Logger
}

// NewStore restores the saved cart. A missing or unreadable snapshot yields an empty
// cart; the panel always starts closed.
func NewStore(ctx context.Context, storage Storage, logger *zap.Logger) *Store {
	s := &Store{storage: storage, logger: logger}

	state, err := storage.Load(ctx)
	switch {
	case err == nil:
		s.lines = normalize(state.Lines)
	case errors.Is(err, ErrNoSavedCart):
	default:
		logger.Warn("failed to restore cart, starting empty", zap.Error(err))
	}

	return s
}

func (s *Store) AddLine(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i] = domain.NewCartLine(product, s.lines[i].Quantity+1)
	} else {
		s.lines = append(s.lines, domain.NewCartLine(product, 1))
	}
	s.panelOpen = true

	s.persist(ctx)
}

func (s *Store) RemoveLine(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// SetQuantity replaces the quantity of a line. Zero or less removes it.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines[i] = domain.NewCartLine(s.lines[i].Product, quantity)

	s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// RemoveOrdered takes the given lines out of the cart. Quantities added after the
// lines were read stay in the cart.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.Product.ID)
		if i < 0 {
			continue
		}
		left := s.lines[i].Quantity - o.Quantity
		if left <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			continue
		}
		s.lines[i] = domain.NewCartLine(s.lines[i].Product, left)
	}

	s.persist(ctx)
}

func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartState{Lines: s.lines}.TotalItemCount()
}

func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartState{Lines: s.lines}.TotalPrice()
}

func (s *Store) OpenPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = true
}

func (s *Store) ClosePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = false
}

func (s *Store) IsPanelOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panelOpen
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLines()
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// Snapshot returns lines and panel state read under one lock, so totals derived from it
// always agree with its lines.
func (s *Store) Snapshot() domain.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartState{Lines: s.copyLines(), IsPanelOpen: s.panelOpen}
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist(ctx)
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) copyLines() []domain.CartLine {
	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// persist must be called with s.mu held. A failed write is logged; memory stays authoritative.
func (s *Store) persist(ctx context.Context) {
	state := domain.CartState{Lines: s.copyLines(), IsPanelOpen: s.panelOpen}
	if err := s.storage.Save(ctx, state); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err), zap.Int("lines", len(state.Lines)))
	}
}

// normalize restores the line invariants on data read back from storage: subtotals are
// recomputed, non-positive quantities dropped and duplicate products merged in place.
func normalize(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if i, ok := index[line.Product.ID]; ok {
			out[i] = domain.NewCartLine(out[i].Product, out[i].Quantity+line.Quantity)
			continue
		}
		index[line.Product.ID] = len(out)
		out = append(out, domain.NewCartLine(line.Product, line.Quantity))
	}
	return out
}
