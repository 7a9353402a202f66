// Package sqlite provides a SQLite-backed implementation of checkoutlog.Repository.
//
// WAL mode is enabled on Open so that the history endpoint can read while a
// checkout goroutine is appending.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"

	// Pure-Go driver, no CGO needed.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkout_logs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    checkout_id  TEXT NOT NULL,
    visitor_id   TEXT NOT NULL DEFAULT '',
    product_id   TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL,
    step         TEXT NOT NULL DEFAULT '',
    detail       TEXT,
    trace_id     TEXT NOT NULL DEFAULT '',
    span_id      TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_logs_checkout_id ON checkout_logs(checkout_id, id);
CREATE INDEX IF NOT EXISTS idx_checkout_logs_trace_id ON checkout_logs(trace_id);
`

// Repository is the SQLite implementation of checkoutlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ checkoutlog.Repository = (*Repository)(nil)

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/checkout.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// Single writer.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends an entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *checkoutlog.Entry) error {
	const q = `
		INSERT INTO checkout_logs
			(checkout_id, visitor_id, product_id, status, step, detail, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.CheckoutID,
		entry.VisitorID,
		entry.ProductID,
		string(entry.Status),
		entry.Step,
		nullableString(entry.Detail),
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkout log for %q: %w", entry.CheckoutID, err)
	}
	return nil
}

// List returns all entries of a checkout in insertion order.
func (r *Repository) List(ctx context.Context, checkoutID string) ([]checkoutlog.Entry, error) {
	const q = `
		SELECT checkout_id, visitor_id, product_id, status, step, COALESCE(detail, ''),
		       trace_id, span_id, created_at
		FROM   checkout_logs
		WHERE  checkout_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %q: %w", checkoutID, err)
	}
	defer rows.Close()

	var out []checkoutlog.Entry
	for rows.Next() {
		var (
			entry     checkoutlog.Entry
			createdAt string
		)
		if err := rows.Scan(
			&entry.CheckoutID,
			&entry.VisitorID,
			&entry.ProductID,
			&entry.Status,
			&entry.Step,
			&entry.Detail,
			&entry.TraceID,
			&entry.SpanID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan %q: %w", checkoutID, err)
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list %q: %w", checkoutID, err)
	}
	return out, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// nullableString stores NULL instead of empty TEXT.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
