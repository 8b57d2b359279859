package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/storage"
)

// StorageKey is the fixed key the cart snapshot lives under.
const StorageKey = "lojao-wm-cart"

var (
	ErrNoSavedCart = errors.New("no saved cart")
	ErrCorruptCart = errors.New("saved cart is unreadable")
)

// Storage persists cart snapshots. Consumers define this interface, not the KV drivers.
type Storage interface {
	// Load returns ErrNoSavedCart when nothing was saved and ErrCorruptCart when the
	// saved value cannot be decoded.
	Load(ctx context.Context) (*domain.CartState, error)
	Save(ctx context.Context, state domain.CartState) error
}

type KVStorage struct {
	kv  storage.KV
	key string
}

func NewKVStorage(kv storage.KV) *KVStorage {
	return &KVStorage{kv: kv, key: StorageKey}
}

func (s *KVStorage) Load(ctx context.Context) (*domain.CartState, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSavedCart
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	state, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	return state, nil
}

func (s *KVStorage) Save(ctx context.Context, state domain.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// decodeState accepts the {"lines":[...]} snapshot and the bare line array older
// storefront builds wrote.
func decodeState(data []byte) (*domain.CartState, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty value")
	}

	var state domain.CartState
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &state.Lines); err != nil {
			return nil, err
		}
	case '{':
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unexpected leading byte %q", data[0])
	}
	return &state, nil
}
