package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
	assert.Len(t, Key("a"), 64)
}

func TestKey_PartBoundariesMatter(t *testing.T) {
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.NotEqual(t, Key("abc"), Key("a", "b", "c"))
}

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), value)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_ImmutableOnceWritten(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []byte("first")))
	require.NoError(t, store.Set(ctx, "k", []byte("second")))

	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), value)
}

func TestGetOrCompute_CachesResult(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	calls := 0
	compute := func() ([]byte, bool, error) {
		calls++
		return []byte("computed"), true, nil
	}

	value, cached, err := GetOrCompute(ctx, store, Key("x"), compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []byte("computed"), value)

	value, cached, err = GetOrCompute(ctx, store, Key("x"), compute)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, []byte("computed"), value)
	assert.Equal(t, 1, calls)
}

func TestGetOrCompute_NilStoreComputesEveryTime(t *testing.T) {
	ctx := context.Background()
	calls := 0
	compute := func() ([]byte, bool, error) {
		calls++
		return []byte("v"), true, nil
	}

	for i := 0; i < 2; i++ {
		_, cached, err := GetOrCompute(ctx, nil, Key("nil-store"), compute)
		require.NoError(t, err)
		assert.False(t, cached)
	}
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ComputeErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _, err := GetOrCompute(ctx, store, Key("err"), func() ([]byte, bool, error) {
		return nil, false, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestGetOrCompute_UncacheableResultNotStored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	calls := 0
	compute := func() ([]byte, bool, error) {
		calls++
		return []byte("degraded"), false, nil
	}

	value, cached, err := GetOrCompute(ctx, store, Key("u"), compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []byte("degraded"), value)
	assert.Equal(t, 0, store.Len(), "uncacheable values must not reach the store")

	// A later caller recomputes rather than inheriting the degraded value.
	_, cached, err = GetOrCompute(ctx, store, Key("u"), compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, calls)
}
