package checkoutlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both fields are empty
// when ctx carries no valid span.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}

	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an entry with the trace info taken from ctx.
func NewEntry(ctx context.Context, checkoutID, visitorID, productID string, status Status, step, detail string) *Entry {
	ti := ExtractTraceInfo(ctx)

	return &Entry{
		CheckoutID: checkoutID,
		VisitorID:  visitorID,
		ProductID:  productID,
		Status:     status,
		Step:       step,
		Detail:     detail,
		TraceID:    ti.TraceID,
		SpanID:     ti.SpanID,
		CreatedAt:  time.Now().UTC(),
	}
}
