// Package guard implements the processing-product guard on top of a cache.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/jcmexdev/digital-storefront/internal/pkg/cache"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
)

const operation = "processing"

// DefaultTTL bounds how long an abandoned checkout keeps a product locked.
const DefaultTTL = 30 * time.Minute

// CacheGuard stores one processing product per owner.
type CacheGuard struct {
	cache cache.Cache
	ttl   time.Duration
}

var _ ports.ProcessingGuard = (*CacheGuard)(nil)

func New(c cache.Cache, ttl time.Duration) *CacheGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheGuard{cache: c, ttl: ttl}
}

func (g *CacheGuard) Acquire(ctx context.Context, owner, productID string) (bool, error) {
	key := g.cache.GenerateKey(operation, owner)

	ok, err := g.cache.SetNX(ctx, key, productID, g.ttl)
	if err != nil {
		return false, fmt.Errorf("guard: acquire %q: %w", owner, err)
	}
	if ok {
		return true, nil
	}

	current, err := g.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("guard: read %q: %w", owner, err)
	}
	if current == "" {
		// Expired between the two calls.
		return g.Acquire(ctx, owner, productID)
	}
	return current == productID, nil
}

func (g *CacheGuard) Release(ctx context.Context, owner string) error {
	if err := g.cache.Delete(ctx, g.cache.GenerateKey(operation, owner)); err != nil {
		return fmt.Errorf("guard: release %q: %w", owner, err)
	}
	return nil
}

func (g *CacheGuard) Current(ctx context.Context, owner string) (string, error) {
	val, err := g.cache.Get(ctx, g.cache.GenerateKey(operation, owner))
	if err != nil {
		return "", fmt.Errorf("guard: read %q: %w", owner, err)
	}
	return val, nil
}
