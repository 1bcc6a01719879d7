package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	t.Run("SaveAndValid", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "abc123def456789"))

		ok, err := store.Valid(ctx, "abc123def456789")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		ok, err := store.Valid(ctx, "never-issued")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		ok, err := store.Valid(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MultipleTokensCoexist", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "tokenone"))
		require.NoError(t, store.Save(ctx, "tokentwo"))

		for _, token := range []string{"tokenone", "tokentwo"} {
			ok, err := store.Valid(ctx, token)
			require.NoError(t, err)
			assert.True(t, ok, "token %s", token)
		}
	})
}
