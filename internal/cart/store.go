// Package cart holds the shopping cart state container.
//
// A Store owns the line items of one cart session. Item count and total are
// derived from the lines on every read, so they are never stale. Mutations
// are written through to a repository before they become visible; the
// open/closed flag of the cart panel is transient and never persisted.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// StorageKey is the key carts are persisted under, suffixed with the session id.
const StorageKey = "cart"

// MaxQuantity is the largest quantity a single line may hold.
const MaxQuantity = 99

// ErrDiscarded is returned by mutations on a store whose cart was discarded.
var ErrDiscarded = errors.New("cart was discarded")

// Key returns the repository key for a cart session.
func Key(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// document is the persisted form of a cart. Totals are recomputed on load.
type document struct {
	Items []model.CartLineItem `json:"items"`
}

// Store is the cart of a single session. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	key    string
	repo   repository.CartRepository
	items  []model.CartLineItem
	isOpen bool
	// discarded stores never persist again.
	discarded bool
	logger    zerolog.Logger
}

// Load initialises a Store for key, rehydrating it from repo when a cart was
// persisted before. A document that cannot be decoded is discarded and the
// cart starts empty.
func Load(ctx context.Context, repo repository.CartRepository, key string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		key:    key,
		repo:   repo,
		logger: logger.With().Str("component", "cart").Str("cart_key", key).Logger(),
	}

	data, err := repo.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
	}

	if data == nil {
		s.logger.Debug().Msg("no persisted cart, starting empty")
		return s, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable persisted cart")
		return s, nil
	}

	s.items = normalise(doc.Items)

	s.logger.Debug().
		Int("lines", len(s.items)).
		Msg("cart rehydrated")

	return s, nil
}

// normalise enforces the line invariants on data read back from storage:
// one line per product id, quantities within [1, MaxQuantity].
func normalise(items []model.CartLineItem) []model.CartLineItem {
	out := make([]model.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		item.Quantity = clampQuantity(item.Quantity)
		if i := indexOf(out, item.ID); i >= 0 {
			out[i].Quantity = clampQuantity(out[i].Quantity + item.Quantity)
			continue
		}
		out = append(out, item)
	}
	return out
}

// AddItem adds quantity units of product. An existing line for the same
// product grows; otherwise a new line is appended. A line may not grow past
// MaxQuantity.
func (s *Store) AddItem(ctx context.Context, product model.Product, quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return model.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItems()
	if i := indexOf(next, product.ID); i >= 0 {
		// Both operands are at most MaxQuantity, so the sum cannot overflow.
		if next[i].Quantity+quantity > MaxQuantity {
			return model.ErrInvalidQuantity
		}
		next[i].Quantity += quantity
	} else {
		next = append(next, model.CartLineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Category: product.Category,
			Quantity: quantity,
		})
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Debug().
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Msg("item added")

	return nil
}

// UpdateQuantity sets the quantity of the line for id, clamped to
// [1, MaxQuantity]. Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return nil
	}

	quantity = clampQuantity(quantity)
	if s.items[i].Quantity == quantity {
		return nil
	}

	next := s.copyItems()
	next[i].Quantity = quantity

	return s.commit(ctx, next)
}

// RemoveItem deletes the line for id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return nil
	}

	next := make([]model.CartLineItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)

	return s.commit(ctx, next)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, []model.CartLineItem{})
}

// Discard deletes the persisted cart and empties the store. Later mutations
// fail with ErrDiscarded, so a request still holding the store cannot write
// the cart back.
func (s *Store) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	s.items = nil
	s.isOpen = false
	s.discarded = true

	s.logger.Debug().Msg("cart discarded")
	return nil
}

// Open marks the cart panel as open.
func (s *Store) Open() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

// Close marks the cart panel as closed.
func (s *Store) Close() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

// Toggle flips the cart panel flag.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	s.mu.Unlock()
}

// IsOpen reports whether the cart panel is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// ItemCount returns the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.items)
}

// Total returns the sum of price × quantity over all lines, rounded to cents.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Snapshot returns the items together with their derived totals.
func (s *Store) Snapshot() model.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CartState{
		Items:     s.copyItems(),
		ItemCount: itemCount(s.items),
		Total:     total(s.items),
		IsOpen:    s.isOpen,
	}
}

// Key returns the repository key of the cart.
func (s *Store) Key() string {
	return s.key
}

// commit persists next and, only once that succeeded, makes it the current state.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, next []model.CartLineItem) error {
	if s.discarded {
		return ErrDiscarded
	}

	data, err := json.Marshal(document{Items: next})
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.repo.Save(ctx, s.key, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	s.items = next
	return nil
}

func (s *Store) copyItems() []model.CartLineItem {
	out := make([]model.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func indexOf(items []model.CartLineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func clampQuantity(quantity int) int {
	return min(max(quantity, 1), MaxQuantity)
}

func itemCount(items []model.CartLineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func total(items []model.CartLineItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.LineTotal()
	}
	return RoundCents(sum)
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
