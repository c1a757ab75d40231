package storage_test

import (
	"context"
	"testing"

	"github.com/nasdf/chronofold/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	testStorage(t, storage.NewMemory())
}

func TestBadger(t *testing.T) {
	store, err := storage.NewBadger(t.TempDir())
	require.NoError(t, err)
	defer store.Close()
	testStorage(t, store)
}

func testStorage(t *testing.T, store storage.Storage) {
	t.Helper()
	ctx := context.Background()

	ok, err := store.Has(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Put(ctx, "key", []byte("value")))

	ok, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	// Put replaces.
	require.NoError(t, store.Put(ctx, "key", []byte("other")))
	value, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), value)
}
