package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/digital-storefront/internal/pkg/cache"
	"github.com/jcmexdev/digital-storefront/internal/pkg/clock"
)

func TestCacheGuard(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC))
	g := New(cache.NewMemoryCache(clk, "storefront"), time.Minute)

	ok, err := g.Acquire(ctx, "visitor-1", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Acquire(ctx, "visitor-1", "p1")
	require.NoError(t, err)
	assert.True(t, ok, "same product is re-entrant")

	ok, err = g.Acquire(ctx, "visitor-1", "p2")
	require.NoError(t, err)
	assert.False(t, ok, "second product must wait")

	ok, err = g.Acquire(ctx, "visitor-2", "p2")
	require.NoError(t, err)
	assert.True(t, ok, "owners are independent")

	current, err := g.Current(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", current)

	require.NoError(t, g.Release(ctx, "visitor-1"))

	current, err = g.Current(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Empty(t, current)

	ok, err = g.Acquire(ctx, "visitor-1", "p2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheGuardExpires(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC))
	g := New(cache.NewMemoryCache(clk, "storefront"), time.Minute)

	ok, err := g.Acquire(ctx, "visitor-1", "p1")
	require.NoError(t, err)
	require.True(t, ok)

	clk.Advance(2 * time.Minute)

	ok, err = g.Acquire(ctx, "visitor-1", "p2")
	require.NoError(t, err)
	assert.True(t, ok)
}
