// Package store holds the last-fetched backend snapshots. Each slice is
// replaced wholesale on a successful fetch and carries a version guard so a
// slow response that was overtaken by a newer fetch cannot overwrite
// fresher state.
package store

import (
	"sync"

	"example.com/marketplace/storefront/internal/domain/cart"
	"example.com/marketplace/storefront/internal/domain/category"
	"example.com/marketplace/storefront/internal/domain/order"
	"example.com/marketplace/storefront/internal/domain/product"
	"example.com/marketplace/storefront/internal/domain/stats"
	"example.com/marketplace/storefront/internal/domain/user"
)

// Slice is one independently refreshed unit of client state. Replacement is
// atomic: a reader never observes a half-written snapshot.
type Slice[T any] struct {
	mu        sync.Mutex
	value     T
	version   uint64
	epoch     uint64
	committed uint64
}

// Begin marks the start of a fetch and returns a token for Commit. Tokens
// are strictly increasing, so of two overlapping fetches the one that
// started later always wins.
func (s *Slice[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// Commit replaces the snapshot unless a fetch that began later has already
// committed. It reports whether the value was accepted.
func (s *Slice[T]) Commit(token uint64, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.committed {
		return false
	}
	s.committed = token
	s.value = value
	s.version++
	return true
}

// Set replaces the snapshot unconditionally, claiming a fresh token. Used
// where no fetch raced (tests, eager initialization).
func (s *Slice[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.committed = s.epoch
	s.value = value
	s.version++
}

func (s *Slice[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Version increments on every accepted replacement; renderers can use it to
// detect change.
func (s *Slice[T]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Store aggregates the six client state slices. Slices are independent: no
// fetch of one requires another, and cross-slice reads (category names for
// display) must tolerate misses.
type Store struct {
	User       Slice[user.User]
	Categories Slice[[]category.Category]
	Products   Slice[[]product.Product]
	Cart       Slice[cart.Cart]
	Orders     Slice[[]order.Order]
	Stats      Slice[stats.Stats]
}

func New() *Store {
	return &Store{}
}
