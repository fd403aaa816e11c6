// Package store defines how a shopping-list Collection is persisted.
//
// A Store always saves and loads the whole Collection. Load reports why it
// could not produce data (never saved, corrupt, unreadable) so callers that
// care can tell the cases apart; Restore and LoadOrEmpty collapse them for
// callers that do not.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/shoplist/internal/model"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved lists")

// CorruptError is returned by Load when the stored data exists but cannot be
// decoded into a Collection.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// IsCorrupt reports whether err (or anything it wraps) is a *CorruptError.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// Store is the interface for persisting the Collection.
type Store interface {
	// Load returns the saved Collection, ErrNotFound, a *CorruptError, or
	// the error of the underlying read.
	Load() (model.Collection, error)

	// Save replaces the stored Collection in full.
	Save(lists model.Collection) error

	// Path returns where this store keeps its data.
	Path() string
}

// Restore loads the Collection and collapses every failure into ok == false.
func Restore(s Store) (lists model.Collection, ok bool) {
	lists, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Debug("store: restore failed", "path", s.Path(), "err", err)
		}
		return nil, false
	}
	return lists, true
}

// LoadOrEmpty is Restore with an empty Collection as the default.
func LoadOrEmpty(s Store) model.Collection {
	lists, ok := Restore(s)
	if !ok {
		return model.Collection{}
	}
	return lists
}

// LoadForUpdate loads the Collection a caller is about to modify and save.
// A missing file is an empty Collection; every other failure is returned so
// the caller never overwrites data it could not read.
func LoadForUpdate(s Store) (model.Collection, error) {
	lists, err := s.Load()
	if errors.Is(err, ErrNotFound) {
		return model.Collection{}, nil
	}
	return lists, err
}
