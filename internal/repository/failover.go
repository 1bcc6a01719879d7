package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverTokenStore serves from a primary store and falls back to a
// secondary when the primary errors. After a failure the primary is only
// retried once a minute, so a down Redis does not add latency to every
// mutation. Tokens issued while failed over live only in the fallback.
type FailoverTokenStore struct {
	primary   TokenStore
	fallback  TokenStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed primary attempt
}

const primaryRetryInterval = time.Minute

func NewFailoverTokenStore(primary, fallback TokenStore, logger *zerolog.Logger) *FailoverTokenStore {
	return &FailoverTokenStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverTokenStore) Save(ctx context.Context, token string) error {
	if s.tryPrimary() {
		if err := s.primary.Save(ctx, token); err == nil {
			s.isDown.Store(false)
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Save(ctx, token)
}

func (s *FailoverTokenStore) Valid(ctx context.Context, token string) (bool, error) {
	if s.tryPrimary() {
		if ok, err := s.primary.Valid(ctx, token); err == nil {
			s.isDown.Store(false)
			return ok, nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Valid(ctx, token)
}

func (s *FailoverTokenStore) tryPrimary() bool {
	if !s.isDown.Load() {
		return true
	}
	return time.Since(time.Unix(0, s.lastCheck.Load())) > primaryRetryInterval
}

func (s *FailoverTokenStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary token store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}
