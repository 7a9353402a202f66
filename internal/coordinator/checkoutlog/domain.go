// Package checkoutlog is the audit trail of checkout transitions.
//
// Every step a checkout goes through is appended as one entry, tagged with
// the trace that produced it, so a buyer complaint can be followed from
// the log row to the distributed trace of the store API calls.
package checkoutlog

import "time"

// Status is the lifecycle state of a checkout at the time of the entry.
type Status string

const (
	StatusStarted    Status = "STARTED"
	StatusStepDone   Status = "STEP_DONE"
	StatusWidgetOpen Status = "WIDGET_OPEN"
	StatusVerifying  Status = "VERIFYING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusFailed     Status = "FAILED"
)

// Entry is a single row of the checkout log.
type Entry struct {
	// CheckoutID identifies one purchase attempt.
	CheckoutID string

	// VisitorID is the storefront visitor that owns the checkout.
	VisitorID string

	// ProductID is the product being purchased.
	ProductID string

	Status Status

	// Step is the name of the step that was just executed or failed.
	Step string

	// Detail is free text: an order id, an error message.
	Detail string

	TraceID string
	SpanID  string

	CreatedAt time.Time
}
