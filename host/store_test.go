// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, store Store, prefix []byte, start []byte) []string {
	t.Helper()
	var keys []string
	require.NoError(t, store.Iterate(context.Background(), prefix, start, func(key []byte, _ []byte) (bool, error) {
		keys = append(keys, string(key))
		return true, nil
	}))
	return keys
}

func TestInMemoryStoreIterate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	store := NewInMemoryStore()
	for _, k := range []string{"p/b", "p/a", "p/c", "q/a"} {
		require.NoError(store.Insert(ctx, []byte(k), []byte("v")))
	}

	require.Equal([]string{"p/a", "p/b", "p/c"}, collect(t, store, []byte("p/"), nil))

	// start is exclusive.
	require.Equal([]string{"p/b", "p/c"}, collect(t, store, []byte("p/"), []byte("p/a")))
}

func TestCacheStoreIsolatesUntilFlush(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	parent := NewInMemoryStore()
	require.NoError(parent.Insert(ctx, []byte("a"), []byte("old")))

	cache := NewCacheStore(parent)
	require.NoError(cache.Insert(ctx, []byte("a"), []byte("new")))
	require.NoError(cache.Insert(ctx, []byte("b"), []byte("added")))

	// Parent unchanged until flush.
	v, err := parent.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal("old", string(v))
	_, err = parent.GetValue(ctx, []byte("b"))
	require.ErrorIs(err, database.ErrNotFound)

	// Cache sees its own writes.
	v, err = cache.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal("new", string(v))

	require.NoError(cache.Flush(ctx))
	v, err = parent.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal("new", string(v))
	v, err = parent.GetValue(ctx, []byte("b"))
	require.NoError(err)
	require.Equal("added", string(v))
}

func TestCacheStoreRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	parent := NewInMemoryStore()
	require.NoError(parent.Insert(ctx, []byte("a"), []byte("v")))

	cache := NewCacheStore(parent)
	require.NoError(cache.Remove(ctx, []byte("a")))
	_, err := cache.GetValue(ctx, []byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	// Deletion only lands on flush.
	_, err = parent.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.NoError(cache.Flush(ctx))
	_, err = parent.GetValue(ctx, []byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestCacheStoreMergedIterate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	parent := NewInMemoryStore()
	require.NoError(parent.Insert(ctx, []byte("p/a"), []byte("v")))
	require.NoError(parent.Insert(ctx, []byte("p/c"), []byte("v")))

	cache := NewCacheStore(parent)
	require.NoError(cache.Insert(ctx, []byte("p/b"), []byte("v")))
	require.NoError(cache.Remove(ctx, []byte("p/c")))

	require.Equal([]string{"p/a", "p/b"}, collect(t, cache, []byte("p/"), nil))
}

// countingStore records how many keys the parent scan actually visits.
type countingStore struct {
	Store
	visited int
}

func (s *countingStore) Iterate(ctx context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error {
	return s.Store.Iterate(ctx, prefix, start, func(key []byte, value []byte) (bool, error) {
		s.visited++
		return fn(key, value)
	})
}

func TestCacheStoreIterateStreamsParent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	parent := &countingStore{Store: NewInMemoryStore()}
	for _, k := range []string{"p/a", "p/c", "p/e", "p/g", "p/i"} {
		require.NoError(parent.Insert(ctx, []byte(k), []byte("parent")))
	}

	cache := NewCacheStore(parent)
	require.NoError(cache.Insert(ctx, []byte("p/b"), []byte("pending")))
	require.NoError(cache.Insert(ctx, []byte("p/e"), []byte("shadow")))
	require.NoError(cache.Remove(ctx, []byte("p/g")))
	require.NoError(cache.Insert(ctx, []byte("p/z"), []byte("tail")))

	got := make(map[string]string)
	require.NoError(cache.Iterate(ctx, []byte("p/"), nil, func(key []byte, value []byte) (bool, error) {
		got[string(key)] = string(value)
		return true, nil
	}))
	require.Equal(map[string]string{
		"p/a": "parent",
		"p/b": "pending",
		"p/c": "parent",
		"p/e": "shadow",
		"p/i": "parent",
		"p/z": "tail",
	}, got)

	// An early stop from the consumer must short-circuit the parent
	// scan, not just the delivery.
	parent.visited = 0
	var seen []string
	require.NoError(cache.Iterate(ctx, []byte("p/"), nil, func(key []byte, _ []byte) (bool, error) {
		seen = append(seen, string(key))
		return len(seen) < 2, nil
	}))
	require.Equal([]string{"p/a", "p/b"}, seen)
	require.LessOrEqual(parent.visited, 2)
}
