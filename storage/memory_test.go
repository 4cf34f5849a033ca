package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.Save(ctx, "records", []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}))

	var got []record
	require.NoError(t, store.Load(ctx, "records", &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Name)

	// Save replaces the previous snapshot wholesale.
	require.NoError(t, store.Save(ctx, "records", []record{{Name: "c", Count: 3}}))
	got = nil
	require.NoError(t, store.Load(ctx, "records", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Name)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	var v int
	err := store.Load(context.Background(), "missing", &v)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreScalarValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "last_read:TutorJuan", 7))

	var n int
	require.NoError(t, store.Load(ctx, "last_read:TutorJuan", &n))
	assert.Equal(t, 7, n)

	assert.Contains(t, store.Keys(), "last_read:TutorJuan")
}
