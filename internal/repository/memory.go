package repository

import (
	"context"
	"sync"
)

// MemoryTokenStore keeps issued tokens in process memory. This is the
// default store: tokens survive until restart and no longer.
type MemoryTokenStore struct {
	tokens sync.Map
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(ctx context.Context, token string) error {
	s.tokens.Store(token, struct{}{})
	return nil
}

func (s *MemoryTokenStore) Valid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, ok := s.tokens.Load(token)
	return ok, nil
}
