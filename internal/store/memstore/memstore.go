// Package memstore is an in-memory store.Store for tests; it never touches disk.
package memstore

import (
	"sync"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// Store keeps a deep copy of the last saved Collection.
type Store struct {
	mu      sync.Mutex
	lists   model.Collection
	saved   bool
	saves   int
	loadErr error
	saveErr error
}

// New returns an empty store; Load reports store.ErrNotFound until Save is called.
func New() *Store {
	return &Store{}
}

// Seed returns a store that already holds lists.
func Seed(lists model.Collection) *Store {
	s := New()
	s.lists = lists.Clone().Normalize()
	s.saved = true
	return s
}

// Load returns a copy of the stored Collection.
func (s *Store) Load() (model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.saved {
		return nil, store.ErrNotFound
	}
	return s.lists.Clone(), nil
}

// Save stores a deep copy of lists.
func (s *Store) Save(lists model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lists = lists.Clone().Normalize()
	s.saved = true
	s.saves++
	return nil
}

// Path returns ":memory:".
func (s *Store) Path() string { return ":memory:" }

// Saves reports how many successful Save calls were made.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailLoad makes every following Load return err (nil restores normal behavior).
func (s *Store) FailLoad(err error) {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}

// FailSave makes every following Save return err (nil restores normal behavior).
func (s *Store) FailSave(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}

var _ store.Store = (*Store)(nil)
