// Package etcdstore provides an etcd-backed implementation of the storage
// contract, for deployments that already run etcd and want session state in
// the same place as the rest of their coordination data.
//
// Keys are scoped per visitor through a namespace:
//
//	session/<namespace>/cID
//
// Expiry maps to etcd leases: a Set whose Options.Expires lies in the future
// attaches the key to a lease of the remaining duration, one in the past
// deletes the key.
package etcdstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/tracknest/sessionkit/storage"
)

const keyPrefix = "session"

// KV is the subset of the etcd client used for key-value access.
// *clientv3.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
	Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error)
	Delete(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.DeleteResponse, error)
}

// Lessor is the subset of the etcd client used for lease management.
// *clientv3.Client satisfies it.
type Lessor interface {
	Grant(ctx context.Context, ttl int64) (*clientv3.LeaseGrantResponse, error)
}

// Options configures the etcd connection and key scoping.
type Options struct {
	// Endpoints are the etcd cluster endpoints.
	Endpoints []string

	// Namespace scopes all keys to one visitor. A fresh UUID is generated
	// when empty.
	Namespace string

	// DialTimeout is the maximum time to wait for connection establishment.
	DialTimeout time.Duration
}

// Store is an etcd-backed storage adapter.
type Store struct {
	kv        KV
	lessor    Lessor
	client    *clientv3.Client
	namespace string
	now       func() time.Time
}

// New dials an etcd cluster and returns a store backed by it.
func New(opts Options) (*Store, error) {
	if len(opts.Endpoints) == 0 {
		opts.Endpoints = []string{"localhost:2379"}
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	s := newStore(client, client, opts.Namespace)
	s.client = client
	return s, nil
}

// NewWithClient wraps an existing etcd client. The caller keeps ownership of
// the client; Close on the returned store is a no-op.
func NewWithClient(client *clientv3.Client, namespace string) *Store {
	return newStore(client, client, namespace)
}

func newStore(kv KV, lessor Lessor, namespace string) *Store {
	if namespace == "" {
		namespace = uuid.NewString()
	}
	return &Store{kv: kv, lessor: lessor, namespace: namespace, now: time.Now}
}

// Namespace returns the visitor namespace this store is scoped to.
func (s *Store) Namespace() string {
	return s.namespace
}

// Get retrieves a value. Missing and lease-expired keys read as absent.
func (s *Store) Get(ctx context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", storage.ErrInvalidKey
	}

	resp, err := s.kv.Get(ctx, s.key(key))
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return "", storage.ErrNotFound
	}
	return string(resp.Kvs[0].Value), nil
}

// Set stores a value, mapping the expiry option to an etcd lease.
func (s *Store) Set(ctx context.Context, key storage.Key, value string, opts storage.Options) error {
	if !key.Valid() {
		return storage.ErrInvalidKey
	}

	var putOpts []clientv3.OpOption
	if !opts.Expires.IsZero() {
		remaining := opts.Expires.Sub(s.now())
		if remaining <= 0 {
			if _, err := s.kv.Delete(ctx, s.key(key)); err != nil {
				return fmt.Errorf("failed to expire %s: %w", key, err)
			}
			return nil
		}

		// etcd leases have whole-second granularity; round up so a key never
		// expires before its requested time.
		ttl := int64((remaining + time.Second - 1) / time.Second)
		lease, err := s.lessor.Grant(ctx, ttl)
		if err != nil {
			return fmt.Errorf("failed to grant lease for %s: %w", key, err)
		}
		putOpts = append(putOpts, clientv3.WithLease(lease.ID))
	}

	if _, err := s.kv.Put(ctx, s.key(key), value, putOpts...); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Clear removes all well-known keys for this namespace.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range storage.Keys() {
		if _, err := s.kv.Delete(ctx, s.key(key)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

// Close closes the underlying etcd client when this store created it.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) key(k storage.Key) string {
	return fmt.Sprintf("%s/%s/%s", keyPrefix, s.namespace, k)
}
