package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "checkout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	at := time.Date(2025, 1, 3, 12, 0, 0, 123, time.UTC)
	entries := []checkoutlog.Entry{
		{CheckoutID: "co-1", VisitorID: "v-1", ProductID: "p1", Status: checkoutlog.StatusStarted, CreatedAt: at},
		{CheckoutID: "co-2", VisitorID: "v-2", ProductID: "p2", Status: checkoutlog.StatusStarted, CreatedAt: at},
		{CheckoutID: "co-1", VisitorID: "v-1", ProductID: "p1", Status: checkoutlog.StatusStepDone, Step: "create_order", Detail: "o1", TraceID: "t", SpanID: "s", CreatedAt: at},
	}
	for i := range entries {
		require.NoError(t, repo.Save(ctx, &entries[i]))
	}

	got, err := repo.List(ctx, "co-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[2], got[1])
}

func TestListUnknownCheckout(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
