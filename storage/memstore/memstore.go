// Package memstore provides an in-memory, expiry-aware implementation of the
// storage contract. It is the embedded adapter: useful in tests and in
// single-process callers that do not need persistence across restarts.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/tracknest/sessionkit/storage"
)

// Store is an in-memory storage adapter. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[storage.Key]entry
	now    func() time.Time
}

type entry struct {
	value   string
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the store's time source, which drives expiry checks.
// Useful in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		values: make(map[storage.Key]entry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a value. Expired values read as absent.
func (s *Store) Get(_ context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", storage.ErrInvalidKey
	}

	s.mu.RLock()
	e, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return "", storage.ErrNotFound
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
		return "", storage.ErrNotFound
	}
	return e.value, nil
}

// Set stores a value, replacing any previous one.
func (s *Store) Set(_ context.Context, key storage.Key, value string, opts storage.Options) error {
	if !key.Valid() {
		return storage.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = entry{value: value, expires: opts.Expires}
	return nil
}

// Clear removes all well-known keys.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range storage.Keys() {
		delete(s.values, key)
	}
	return nil
}
