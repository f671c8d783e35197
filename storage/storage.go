package storage

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by storage adapters.
var (
	// ErrNotFound is returned by Get when no value exists for the key.
	ErrNotFound = errors.New("storage: value not found")

	// ErrInvalidKey is returned when a key is not one of the well-known keys.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Key names one of the four persisted session values.
type Key string

// The well-known keys. Their string forms are the wire names adapters use
// (cookie names, Redis hash fields and so on).
const (
	KeyClient   Key = "cID"
	KeySession  Key = "sID"
	KeyEvent    Key = "eID"
	KeySequence Key = "seqID"
)

// Keys returns all well-known keys in waterfall order.
func Keys() []Key {
	return []Key{KeyClient, KeySession, KeyEvent, KeySequence}
}

// Valid reports whether k is one of the well-known keys.
func (k Key) Valid() bool {
	switch k {
	case KeyClient, KeySession, KeyEvent, KeySequence:
		return true
	}
	return false
}

// Options carries per-write persistence attributes. Expires is meaningful to
// every adapter; the remaining fields are cookie attributes that non-cookie
// adapters ignore.
type Options struct {
	// Expires is the absolute expiry time. The zero value means no expiry.
	Expires time.Time

	// Path scopes a cookie. Defaults to "/" in cookie adapters.
	Path string

	// Domain scopes a cookie to a domain.
	Domain string

	// Secure marks a cookie as HTTPS-only.
	Secure bool

	// HTTPOnly hides a cookie from client-side scripts.
	HTTPOnly bool

	// SameSite is the cookie SameSite policy: "lax", "strict" or "none".
	SameSite string
}

// Store is the collaborator contract required by the session tracker.
type Store interface {
	// Get retrieves the value for a well-known key.
	// Returns ErrNotFound if no value exists.
	Get(ctx context.Context, key Key) (string, error)

	// Set stores a value for a well-known key, replacing any previous value.
	Set(ctx context.Context, key Key, value string, opts Options) error

	// Clear removes all four well-known keys. Best effort: adapters remove
	// what they can and report the first failure.
	Clear(ctx context.Context) error
}
