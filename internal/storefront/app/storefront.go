// Package app holds the storefront's checkout flow: one Checkout per
// visitor, kept by the Storefront for as long as the visitor is active.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/digital-storefront/internal/pkg/clock"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
)

// WidgetLoader is a checkout widget whose script must be registered before
// use and unregistered on shutdown.
type WidgetLoader interface {
	ports.Widget
	Init()
	Teardown()
}

// Storefront owns the visitors' checkouts and the widget script lifetime.
type Storefront struct {
	cfg    Config
	deps   Deps
	loader WidgetLoader

	mu        sync.Mutex
	checkouts map[string]*Checkout
	closed    bool
}

// NewStorefront registers the widget script; Close unregisters it.
func NewStorefront(cfg Config, api ports.StoreAPI, loader WidgetLoader, guard ports.ProcessingGuard, logRepo checkoutlog.Repository, clk clock.Clock) *Storefront {
	if clk == nil {
		clk = clock.NewSystem()
	}
	loader.Init()

	return &Storefront{
		cfg: cfg,
		deps: Deps{
			API:    api,
			Widget: loader,
			Guard:  guard,
			Log:    logRepo,
			Clock:  clk,
		},
		loader:    loader,
		checkouts: make(map[string]*Checkout),
	}
}

// Checkout returns the visitor's checkout, creating it on first use.
func (s *Storefront) Checkout(visitorID string) *Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checkouts[visitorID]
	if !ok {
		c = NewCheckout(visitorID, s.cfg, s.deps)
		s.checkouts[visitorID] = c
	}
	return c
}

// History returns the log of the visitor's most recent checkout.
func (s *Storefront) History(ctx context.Context, visitorID string) ([]checkoutlog.Entry, error) {
	if s.deps.Log == nil {
		return nil, nil
	}
	checkoutID := s.Checkout(visitorID).LastCheckoutID()
	if checkoutID == "" {
		return nil, entity.ErrCheckoutNotFound
	}
	return s.deps.Log.List(ctx, checkoutID)
}

// Sweep cancels abandoned purchases, then forgets visitors that have been
// idle for longer than maxIdle and have no purchase in progress. It returns
// how many were removed.
func (s *Storefront) Sweep(ctx context.Context, maxIdle time.Duration) int {
	s.mu.Lock()
	checkouts := make([]*Checkout, 0, len(s.checkouts))
	for _, c := range s.checkouts {
		checkouts = append(checkouts, c)
	}
	s.mu.Unlock()

	for _, c := range checkouts {
		c.reapAbandoned(ctx)
	}

	cutoff := s.deps.Clock.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.checkouts {
		lastSeen, idle := c.idleSince()
		if idle && lastSeen.Before(cutoff) {
			delete(s.checkouts, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Storefront) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(ctx, maxIdle); n > 0 {
				slog.InfoContext(ctx, "swept idle visitors", "count", n)
			}
		}
	}
}

// Close unregisters the widget script. It is safe to call more than once.
func (s *Storefront) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.loader.Teardown()
}
