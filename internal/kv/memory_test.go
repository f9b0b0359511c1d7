package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the shared Store contract against a backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "starpro_orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "starpro_orders", `[]`))
	v, ok, err := s.Get(ctx, "starpro_orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Set(ctx, "starpro_orders", `[{"id":1}]`))
	v, _, err = s.Get(ctx, "starpro_orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Remove(ctx, "starpro_orders"))
	_, ok, err = s.Get(ctx, "starpro_orders")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Remove(ctx, "never_set"))
	assert.ErrorIs(t, s.Set(ctx, " ", "x"), ErrEmptyKey)
	_, _, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}
