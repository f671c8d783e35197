// Package cookiestore provides a request/response-scoped cookie adapter for
// the storage contract, for server-side use.
//
// A Store is built from the incoming Cookie header of one request. Reads come
// from that immutable snapshot; writes accumulate Set-Cookie header values
// the caller attaches to the outgoing response. Nothing is shared between
// requests, so concurrent requests against the same visitor can never race
// inside the adapter.
//
//	store := cookiestore.New(r.Header.Get("Cookie"))
//	result, err := tracker.Process(ctx, store)
//	for _, c := range store.SetCookies() {
//	    w.Header().Add("Set-Cookie", c)
//	}
package cookiestore

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tracknest/sessionkit/storage"
)

// Store is a request-scoped cookie storage adapter.
type Store struct {
	prefix   string
	incoming map[string]string

	mu      sync.Mutex
	pending []string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix namespaces cookie names, e.g. a prefix of "tn_" stores the
// client identifier under "tn_cID". Default is no prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New builds a store from a raw Cookie request header. A malformed or empty
// header yields an empty snapshot, never an error: absent cookies are the
// normal first-visit case.
func New(cookieHeader string, opts ...Option) *Store {
	s := &Store{incoming: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}

	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return s
	}
	for _, c := range cookies {
		s.incoming[c.Name] = c.Value
	}
	return s
}

// Get reads from the incoming request snapshot.
func (s *Store) Get(_ context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", storage.ErrInvalidKey
	}
	v, ok := s.incoming[s.prefix+string(key)]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

// Set appends a Set-Cookie header value for the outgoing response.
func (s *Store) Set(_ context.Context, key storage.Key, value string, opts storage.Options) error {
	if !key.Valid() {
		return storage.ErrInvalidKey
	}
	s.append(s.cookie(key, value, opts))
	return nil
}

// Clear appends expired Set-Cookie header values for all well-known keys.
func (s *Store) Clear(_ context.Context) error {
	for _, key := range storage.Keys() {
		c := s.cookie(key, "", storage.Options{})
		c.Expires = time.Unix(0, 0)
		c.MaxAge = -1
		s.append(c)
	}
	return nil
}

// SetCookies returns the accumulated Set-Cookie header values, in write
// order.
func (s *Store) SetCookies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *Store) append(c *http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, c.String())
}

func (s *Store) cookie(key storage.Key, value string, opts storage.Options) *http.Cookie {
	path := opts.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     s.prefix + string(key),
		Value:    value,
		Path:     path,
		Domain:   opts.Domain,
		Expires:  opts.Expires,
		Secure:   opts.Secure,
		HttpOnly: opts.HTTPOnly,
		SameSite: sameSite(opts.SameSite),
	}
}

func sameSite(policy string) http.SameSite {
	switch policy {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteDefaultMode
}
