// Package redistore provides a Redis-backed implementation of the storage
// contract, for server-side deployments where session state must survive
// across processes.
//
// Keys are scoped per visitor through a namespace, so one Redis instance can
// hold state for many concurrent visitors:
//
//	session:<namespace>:cID
//
// Expiry maps to Redis TTLs: a Set whose Options.Expires lies in the future
// becomes a SET with expiration, one in the past becomes a delete.
package redistore

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tracknest/sessionkit/storage"
)

const keyPrefix = "session"

// Options configures the Redis connection and key scoping.
type Options struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// Namespace scopes all keys to one visitor. A fresh UUID is generated
	// when empty, which effectively starts a new visitor.
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// Store is a Redis-backed storage adapter.
type Store struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

// New creates a Redis store and verifies the connection with a ping.
func New(opts Options) (*Store, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = uuid.NewString()
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client, namespace: opts.Namespace, now: time.Now}, nil
}

// Namespace returns the visitor namespace this store is scoped to. Callers
// persist it (typically in a cookie) to reach the same state next request.
func (s *Store) Namespace() string {
	return s.namespace
}

// Get retrieves a value. Missing and expired keys read as absent.
func (s *Store) Get(ctx context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", storage.ErrInvalidKey
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value, mapping the expiry option to a Redis TTL.
func (s *Store) Set(ctx context.Context, key storage.Key, value string, opts storage.Options) error {
	if !key.Valid() {
		return storage.ErrInvalidKey
	}

	var ttl time.Duration
	if !opts.Expires.IsZero() {
		ttl = opts.Expires.Sub(s.now())
		if ttl <= 0 {
			if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
				return fmt.Errorf("failed to expire %s: %w", key, err)
			}
			return nil
		}
	}

	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Clear removes all well-known keys for this namespace.
func (s *Store) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(storage.Keys()))
	for _, key := range storage.Keys() {
		keys = append(keys, s.key(key))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k storage.Key) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, s.namespace, k)
}
