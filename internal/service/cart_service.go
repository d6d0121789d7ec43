package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// ErrSessionRequired is returned when an operation is called without a session id.
var ErrSessionRequired = errors.New("cart session id is required")

// session is a live cart and the last time it was used.
type session struct {
	store    *cart.Store
	lastSeen time.Time
}

// cartService implements CartService as a registry of per-session stores.
type cartService struct {
	mu          sync.Mutex
	sessions    map[string]*session
	repo        repository.CartRepository
	catalog     catalog.Catalog
	idleTimeout time.Duration
	now         func() time.Time
	stop        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	logger      zerolog.Logger
}

// NewCartService creates a cart service. Carts untouched for longer than
// idleTimeout are dropped from memory; their persisted contents stay in repo.
func NewCartService(
	repo repository.CartRepository,
	catalog catalog.Catalog,
	idleTimeout time.Duration,
	logger zerolog.Logger,
) CartService {
	s := newCartService(repo, catalog, idleTimeout, logger)
	go s.janitor()
	return s
}

func newCartService(repo repository.CartRepository, catalog catalog.Catalog, idleTimeout time.Duration, logger zerolog.Logger) *cartService {
	return &cartService{
		sessions:    make(map[string]*session),
		repo:        repo,
		catalog:     catalog,
		idleTimeout: idleTimeout,
		now:         time.Now,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the cart of a session.
func (s *cartService) Get(ctx context.Context, sessionID string) (*model.CartState, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(store), nil
}

// AddItem adds a catalog product to the cart.
func (s *cartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		s.logger.Debug().Str("product_id", productID).Msg("cannot add unknown product")
		return nil, err
	}

	store, err := s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.AddItem(ctx, product, quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return snapshot(store), nil
}

// UpdateQuantity sets the quantity of a line.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error) {
	store, err := s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.UpdateQuantity(ctx, productID, quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return snapshot(store), nil
}

// RemoveItem removes a line.
func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (*model.CartState, error) {
	store, err := s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.RemoveItem(ctx, productID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}

	return snapshot(store), nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, sessionID string) (*model.CartState, error) {
	store, err := s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.Clear(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return snapshot(store), nil
}

// SetOpen opens or closes the cart panel.
func (s *cartService) SetOpen(ctx context.Context, sessionID string, open bool) (*model.CartState, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if open {
		store.Open()
	} else {
		store.Close()
	}

	return snapshot(store), nil
}

// Toggle flips the cart panel.
func (s *cartService) Toggle(ctx context.Context, sessionID string) (*model.CartState, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	store.Toggle()

	return snapshot(store), nil
}

// Discard drops a live cart and deletes what was persisted for it. Requests
// already holding the dropped store fail to persist and retry on a fresh one.
func (s *cartService) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	s.mu.Lock()
	sess, live := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	var err error
	if live {
		err = sess.store.Discard(ctx)
	} else {
		err = s.repo.Delete(ctx, cart.Key(sessionID))
	}
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	s.logger.Debug().Str("session_id", sessionID).Msg("cart discarded")
	return nil
}

// Close stops the janitor. It is safe to call more than once.
func (s *cartService) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done

	s.logger.Info().Msg("cart service closed")
	return nil
}

// store returns the live store for sessionID, loading it from the
// repository on first use. Loading happens outside the registry lock.
func (s *cartService) store(ctx context.Context, sessionID string) (*cart.Store, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	if store := s.touch(sessionID); store != nil {
		return store, nil
	}

	loaded, err := cart.Load(ctx, s.repo, cart.Key(sessionID), s.logger)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request for the same session may have won the race.
	if existing, ok := s.sessions[sessionID]; ok {
		existing.lastSeen = s.now()
		return existing.store, nil
	}

	s.sessions[sessionID] = &session{store: loaded, lastSeen: s.now()}
	s.logger.Debug().
		Str("session_id", sessionID).
		Int("active_sessions", len(s.sessions)).
		Msg("cart session started")

	return loaded, nil
}

// mutate applies fn to the session's store. When the store was discarded
// while fn waited on it, fn runs once more against a freshly loaded store.
func (s *cartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Store) error) (*cart.Store, error) {
	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	err = fn(store)
	if errors.Is(err, cart.ErrDiscarded) {
		s.logger.Debug().Str("session_id", sessionID).Msg("cart discarded mid-request, retrying")
		if store, err = s.store(ctx, sessionID); err != nil {
			return nil, err
		}
		err = fn(store)
	}
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *cartService) touch(sessionID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	sess.lastSeen = s.now()
	return sess.store
}

// janitor evicts idle sessions until Close is called.
func (s *cartService) janitor() {
	defer close(s.done)

	interval := s.idleTimeout / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stop:
			return
		}
	}
}

// evictIdle drops sessions not used within idleTimeout and returns how many were dropped.
func (s *cartService) evictIdle() int {
	if s.idleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Debug().
			Int("evicted", evicted).
			Int("active_sessions", len(s.sessions)).
			Msg("idle cart sessions evicted")
	}

	return evicted
}

func (s *cartService) activeSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func snapshot(store *cart.Store) *model.CartState {
	state := store.Snapshot()
	return &state
}
