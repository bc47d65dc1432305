package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/chewy/internal/testutil"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ trello.Cache = (*SQLiteResponseCache)(nil)

func TestResponseCache_LookupMiss(t *testing.T) {
	cache := NewSQLiteResponseCache(testutil.NewTestDB(t))

	body, ok, err := cache.Lookup(context.Background(), "GET_/members/me")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestResponseCache_StoreLookupPurge(t *testing.T) {
	cache := NewSQLiteResponseCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "GET_/boards/b1", []byte(`{"id":"b1"}`)))
	require.NoError(t, cache.Store(ctx, "GET_/boards/b1", []byte(`{"id":"b1","name":"Sprint"}`)))
	require.NoError(t, cache.Store(ctx, "GET_/members/me", []byte(`{"id":"me"}`)))

	body, ok, err := cache.Lookup(ctx, "GET_/boards/b1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"b1","name":"Sprint"}`, string(body))

	n, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, cache.Purge(ctx))
	n, err = cache.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
