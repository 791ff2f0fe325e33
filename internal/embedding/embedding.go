// Package embedding provides the text -> vector capability used to
// anchor freeform labels in the canonical vocabulary. Providers are
// process-wide singletons created at startup and injected where needed.
package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"
)

// Provider is one concrete embedding backend.
type Provider interface {
	Name() string
	ModelName() string
	Dimension() int
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

// RetryStrategy decides the backoff before retry attempt n, or a
// negative value to stop retrying the current provider.
type RetryStrategy interface {
	NextBackoff(attempt int) int
}

// SimpleRetryStrategy retries a fixed number of times with linear
// backoff.
type SimpleRetryStrategy struct {
	MaxAttempts int
	BaseDelayMs int
}

func (s *SimpleRetryStrategy) NextBackoff(attempt int) int {
	if attempt >= s.MaxAttempts-1 {
		return -1
	}
	return s.BaseDelayMs * (attempt + 1)
}

// FallbackService tries providers in order, retrying each per the
// strategy before moving on. All providers must share a dimension.
type FallbackService struct {
	mu        sync.RWMutex
	providers []Provider
	active    int
	strategy  RetryStrategy
}

func NewFallbackService(providers []Provider, strategy RetryStrategy) (*FallbackService, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one embedding provider is required")
	}
	if strategy == nil {
		strategy = &SimpleRetryStrategy{MaxAttempts: 3, BaseDelayMs: 100}
	}
	dim := providers[0].Dimension()
	for _, p := range providers[1:] {
		if p.Dimension() != dim {
			return nil, fmt.Errorf("embedding providers must share a dimension (%s has %d, expected %d)",
				p.Name(), p.Dimension(), dim)
		}
	}
	return &FallbackService{providers: providers, strategy: strategy}, nil
}

func (s *FallbackService) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.providers[s.active].Dimension()
}

// Embed generates one embedding, cycling through providers with retries
// until one succeeds or every provider has been exhausted.
func (s *FallbackService) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	s.mu.RLock()
	start := s.active
	s.mu.RUnlock()

	var lastErr error
	attempt := 0
	for {
		s.mu.RLock()
		provider := s.providers[s.active]
		s.mu.RUnlock()

		vec, err := provider.Embed(ctx, text)
		if ctx.Err() != nil {
			return pgvector.Vector{}, fmt.Errorf("context cancelled during embedding: %w", ctx.Err())
		}
		if err == nil {
			return vec, nil
		}
		lastErr = fmt.Errorf("provider %s failed: %w", provider.Name(), err)
		log.Warnf("embedding provider %s failed: %v", provider.Name(), err)

		backoffMs := s.strategy.NextBackoff(attempt)
		if backoffMs < 0 {
			s.mu.Lock()
			next := (s.active + 1) % len(s.providers)
			if next == start {
				s.mu.Unlock()
				return pgvector.Vector{}, fmt.Errorf("all embedding providers failed: %w", lastErr)
			}
			s.active = next
			log.Infof("switching embedding provider to %s", s.providers[next].Name())
			s.mu.Unlock()
			attempt = 0
			continue
		}

		select {
		case <-time.After(time.Duration(backoffMs) * time.Millisecond):
			attempt++
		case <-ctx.Done():
			return pgvector.Vector{}, fmt.Errorf("context cancelled while waiting to retry: %w", ctx.Err())
		}
	}
}
