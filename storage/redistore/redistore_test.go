package redistore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/sessionkit/storage"
)

// setupTestStore creates a miniredis instance and returns a connected Store.
func setupTestStore(t *testing.T, opts Options) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	opts.URL = fmt.Sprintf("redis://%s", mr.Addr())

	store, err := New(opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, mr
}

func TestNew(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		store, _ := setupTestStore(t, Options{})
		require.NotNil(t, store)
	})

	t.Run("generated namespace", func(t *testing.T) {
		store, _ := setupTestStore(t, Options{})
		assert.NotEmpty(t, store.Namespace())
	})

	t.Run("explicit namespace", func(t *testing.T) {
		store, _ := setupTestStore(t, Options{Namespace: "visitor-1"})
		assert.Equal(t, "visitor-1", store.Namespace())
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := New(Options{URL: "invalid://url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := New(Options{
			URL:            "redis://localhost:1",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}

func TestSetGet(t *testing.T) {
	store, _ := setupTestStore(t, Options{Namespace: "v1"})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyClient, "abc", storage.Options{}))

	got, err := store.Get(ctx, storage.KeyClient)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestGetMissing(t *testing.T) {
	store, _ := setupTestStore(t, Options{})

	_, err := store.Get(context.Background(), storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInvalidKey(t *testing.T) {
	store, _ := setupTestStore(t, Options{})
	ctx := context.Background()

	_, err := store.Get(ctx, storage.Key("bogus"))
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	err = store.Set(ctx, storage.Key("bogus"), "v", storage.Options{})
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestExpiryMapsToTTL(t *testing.T) {
	store, mr := setupTestStore(t, Options{Namespace: "v1"})
	ctx := context.Background()

	err := store.Set(ctx, storage.KeyEvent, "ev", storage.Options{
		Expires: time.Now().Add(30 * time.Minute),
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, storage.KeyEvent)
	require.NoError(t, err)

	// Past the TTL the key is gone.
	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, storage.KeyEvent)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPastExpiryDeletes(t *testing.T) {
	store, _ := setupTestStore(t, Options{Namespace: "v1"})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyEvent, "ev", storage.Options{}))

	err := store.Set(ctx, storage.KeyEvent, "ev2", storage.Options{
		Expires: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, storage.KeyEvent)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNamespaceIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", mr.Addr())

	a, err := New(Options{URL: url, Namespace: "visitor-a"})
	require.NoError(t, err)
	defer a.Close()

	b, err := New(Options{URL: url, Namespace: "visitor-b"})
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, a.Set(ctx, storage.KeyClient, "a-client", storage.Options{}))

	_, err = b.Get(ctx, storage.KeyClient)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClear(t *testing.T) {
	store, _ := setupTestStore(t, Options{Namespace: "v1"})
	ctx := context.Background()

	for _, key := range storage.Keys() {
		require.NoError(t, store.Set(ctx, key, "v", storage.Options{}))
	}
	require.NoError(t, store.Clear(ctx))

	for _, key := range storage.Keys() {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
}
