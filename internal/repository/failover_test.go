package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyTokenStore struct {
	inner *MemoryTokenStore
	fail  bool
	calls int
}

func (s *flakyTokenStore) Save(ctx context.Context, token string) error {
	s.calls++
	if s.fail {
		return errors.New("primary down")
	}
	return s.inner.Save(ctx, token)
}

func (s *flakyTokenStore) Valid(ctx context.Context, token string) (bool, error) {
	s.calls++
	if s.fail {
		return false, errors.New("primary down")
	}
	return s.inner.Valid(ctx, token)
}

func TestFailoverUsesPrimary(t *testing.T) {
	primary := &flakyTokenStore{inner: NewMemoryTokenStore()}
	fallback := NewMemoryTokenStore()
	logger := zerolog.Nop()
	store := NewFailoverTokenStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "primarytoken"))

	ok, err := store.Valid(ctx, "primarytoken")
	require.NoError(t, err)
	assert.True(t, ok)

	// Nothing should have leaked into the fallback.
	ok, err = fallback.Valid(ctx, "primarytoken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFailoverFallsBack(t *testing.T) {
	primary := &flakyTokenStore{inner: NewMemoryTokenStore(), fail: true}
	fallback := NewMemoryTokenStore()
	logger := zerolog.Nop()
	store := NewFailoverTokenStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "fallbacktoken"))

	ok, err := store.Valid(ctx, "fallbacktoken")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFailoverStopsHammeringDownPrimary(t *testing.T) {
	primary := &flakyTokenStore{inner: NewMemoryTokenStore(), fail: true}
	fallback := NewMemoryTokenStore()
	logger := zerolog.Nop()
	store := NewFailoverTokenStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "one"))
	callsAfterFirstFailure := primary.calls

	require.NoError(t, store.Save(ctx, "two"))
	_, err := store.Valid(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirstFailure, primary.calls, "primary must rest until the retry interval passes")
}
