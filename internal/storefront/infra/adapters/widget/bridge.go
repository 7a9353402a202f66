// Package widget bridges the browser-side checkout widget to the
// orchestrator. Open parks the widget options until the page reports back
// through Complete or Dismiss.
package widget

import (
	"context"
	"sync"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
)

const DefaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

// Bridge owns the checkout script registration and the widgets currently
// open in visitors' browsers, keyed by order id.
type Bridge struct {
	mu        sync.Mutex
	scriptURL string
	loaded    bool
	pending   map[string]entity.WidgetOptions
}

var _ ports.Widget = (*Bridge)(nil)

func NewBridge(scriptURL string) *Bridge {
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	return &Bridge{
		scriptURL: scriptURL,
		pending:   make(map[string]entity.WidgetOptions),
	}
}

// Init registers the checkout script. Calling it again is a no-op.
func (b *Bridge) Init() {
	b.mu.Lock()
	b.loaded = true
	b.mu.Unlock()
}

// Teardown unregisters the script and forgets every open widget. Later
// Open calls fail until Init is called again.
func (b *Bridge) Teardown() {
	b.mu.Lock()
	b.loaded = false
	b.pending = make(map[string]entity.WidgetOptions)
	b.mu.Unlock()
}

// ScriptURL is the script the page must include, or "" when not loaded.
func (b *Bridge) ScriptURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		return ""
	}
	return b.scriptURL
}

func (b *Bridge) Open(_ context.Context, opts entity.WidgetOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.loaded {
		return entity.ErrWidgetClosed
	}
	b.pending[opts.OrderID] = opts
	return nil
}

// Complete delivers the widget's success payload to the open widget's handler.
func (b *Bridge) Complete(ctx context.Context, payment entity.PaymentVerification) error {
	opts, ok := b.take(payment.OrderID)
	if !ok {
		return entity.ErrCheckoutNotFound
	}
	if opts.Handler != nil {
		opts.Handler(ctx, payment)
	}
	return nil
}

// Dismiss reports that the buyer closed the widget without paying.
func (b *Bridge) Dismiss(ctx context.Context, orderID string) error {
	opts, ok := b.take(orderID)
	if !ok {
		return entity.ErrCheckoutNotFound
	}
	if opts.OnDismiss != nil {
		opts.OnDismiss(ctx)
	}
	return nil
}

// Forget drops a widget the buyer abandoned without calling back.
func (b *Bridge) Forget(orderID string) {
	b.take(orderID)
}

func (b *Bridge) isPending(orderID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[orderID]
	return ok
}

func (b *Bridge) take(orderID string) (entity.WidgetOptions, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	opts, ok := b.pending[orderID]
	if ok {
		delete(b.pending, orderID)
	}
	return opts, ok
}
