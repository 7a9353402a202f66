package checkoutlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewEntryWithoutSpan(t *testing.T) {
	e := NewEntry(context.Background(), "co-1", "v-1", "p1", StatusStarted, "", "")

	assert.Equal(t, "co-1", e.CheckoutID)
	assert.Equal(t, StatusStarted, e.Status)
	assert.Empty(t, e.TraceID)
	assert.Empty(t, e.SpanID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestNewEntryWithSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "checkout")
	defer span.End()

	e := NewEntry(ctx, "co-1", "v-1", "p1", StatusStepDone, "create_order", "o1")

	assert.Equal(t, span.SpanContext().TraceID().String(), e.TraceID)
	assert.Len(t, e.SpanID, 16)
}

func TestMemoryRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Save(ctx, NewEntry(ctx, "co-1", "v", "p", StatusStarted, "", "")))
	require.NoError(t, repo.Save(ctx, NewEntry(ctx, "co-2", "v", "p", StatusStarted, "", "")))
	require.NoError(t, repo.Save(ctx, NewEntry(ctx, "co-1", "v", "p", StatusCompleted, "", "")))

	entries, err := repo.List(ctx, "co-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusStarted, entries[0].Status)
	assert.Equal(t, StatusCompleted, entries[1].Status)
}
