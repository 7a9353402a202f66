package checkoutlog

import "context"

// Repository persists checkout log entries. The log is append-only.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	// List returns the entries of one checkout, oldest first.
	List(ctx context.Context, checkoutID string) ([]Entry, error)
}
