package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

func TestBridgeRequiresInit(t *testing.T) {
	b := NewBridge("")

	assert.Empty(t, b.ScriptURL())
	assert.ErrorIs(t, b.Open(context.Background(), entity.WidgetOptions{OrderID: "o1"}), entity.ErrWidgetClosed)

	b.Init()
	b.Init()
	assert.Equal(t, DefaultScriptURL, b.ScriptURL())
	assert.NoError(t, b.Open(context.Background(), entity.WidgetOptions{OrderID: "o1"}))
}

func TestBridgeCompleteCallsHandlerOnce(t *testing.T) {
	ctx := context.Background()
	b := NewBridge("https://cdn.example/checkout.js")
	b.Init()

	var got []entity.PaymentVerification
	dismissed := false
	require.NoError(t, b.Open(ctx, entity.WidgetOptions{
		OrderID:   "o1",
		Handler:   func(_ context.Context, p entity.PaymentVerification) { got = append(got, p) },
		OnDismiss: func(context.Context) { dismissed = true },
	}))
	assert.True(t, b.isPending("o1"))

	payment := entity.PaymentVerification{OrderID: "o1", PaymentID: "pay1", Signature: "sig1"}
	require.NoError(t, b.Complete(ctx, payment))
	assert.ErrorIs(t, b.Complete(ctx, payment), entity.ErrCheckoutNotFound)
	assert.ErrorIs(t, b.Dismiss(ctx, "o1"), entity.ErrCheckoutNotFound)

	assert.Equal(t, []entity.PaymentVerification{payment}, got)
	assert.False(t, dismissed)
	assert.False(t, b.isPending("o1"))
}

func TestBridgeDismiss(t *testing.T) {
	ctx := context.Background()
	b := NewBridge("")
	b.Init()

	dismissed := 0
	require.NoError(t, b.Open(ctx, entity.WidgetOptions{
		OrderID:   "o1",
		OnDismiss: func(context.Context) { dismissed++ },
	}))

	require.NoError(t, b.Dismiss(ctx, "o1"))
	assert.Equal(t, 1, dismissed)
}

func TestBridgeTeardownForgetsPending(t *testing.T) {
	ctx := context.Background()
	b := NewBridge("")
	b.Init()
	require.NoError(t, b.Open(ctx, entity.WidgetOptions{OrderID: "o1"}))

	b.Teardown()

	assert.Empty(t, b.ScriptURL())
	assert.False(t, b.isPending("o1"))
	assert.ErrorIs(t, b.Open(ctx, entity.WidgetOptions{OrderID: "o2"}), entity.ErrWidgetClosed)
}

func TestBridgeForget(t *testing.T) {
	ctx := context.Background()
	b := NewBridge("")
	b.Init()

	called := false
	require.NoError(t, b.Open(ctx, entity.WidgetOptions{
		OrderID:   "o1",
		OnDismiss: func(context.Context) { called = true },
	}))

	b.Forget("o1")
	b.Forget("o1")

	assert.False(t, b.isPending("o1"))
	assert.ErrorIs(t, b.Dismiss(ctx, "o1"), entity.ErrCheckoutNotFound)
	assert.False(t, called, "forgetting a widget runs none of its callbacks")
}
