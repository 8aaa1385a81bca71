package debugstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	store.Save(context.Background(), "req-1", "compose_attempt_1_raw", []byte("payload"))

	payload, ok := store.Get("req-1", "compose_attempt_1_raw")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), payload)
	assert.Equal(t, 1, store.Stages("req-1"))
}

func TestMemoryStore_EmptyRequestIDDisablesPersistence(t *testing.T) {
	store := NewMemoryStore()
	store.Save(context.Background(), "", "stage", []byte("payload"))

	_, ok := store.Get("", "stage")
	assert.False(t, ok)
}

func TestMemoryStore_LaterSaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	store.Save(context.Background(), "req-1", "stage", []byte("first"))
	store.Save(context.Background(), "req-1", "stage", []byte("second"))

	payload, ok := store.Get("req-1", "stage")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), payload)
}

func TestMemoryStore_CopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	buf := []byte("original")
	store.Save(context.Background(), "req-1", "stage", buf)
	buf[0] = 'X'

	payload, _ := store.Get("req-1", "stage")
	assert.Equal(t, []byte("original"), payload)
}

func TestNopStore(t *testing.T) {
	assert.NotPanics(t, func() {
		NopStore{}.Save(context.Background(), "req", "stage", []byte("x"))
	})
}
