package ports

import "context"

// ProcessingGuard tracks the single product a visitor is purchasing.
type ProcessingGuard interface {
	// Acquire marks productID as processing for owner. It is re-entrant for
	// the same product and returns false when another product holds it.
	Acquire(ctx context.Context, owner, productID string) (bool, error)
	Release(ctx context.Context, owner string) error
	// Current returns the processing product for owner, or "".
	Current(ctx context.Context, owner string) (string, error)
}
