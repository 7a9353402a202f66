// Package coordinator sequences the legs of a purchase. Steps run one after
// the other; when one fails, the steps that already succeeded are
// compensated in reverse order.
package coordinator

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
)

const tracerName = "github.com/jcmexdev/digital-storefront/internal/coordinator"

// Step represents a single leg of the checkout.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps for one purchase.
type Orchestrator struct {
	purchase *Purchase
	steps    []Step
	logRepo  checkoutlog.Repository // nil-safe: entries are skipped if nil
}

func NewOrchestrator(p *Purchase, steps []Step, logRepo checkoutlog.Repository) *Orchestrator {
	return &Orchestrator{purchase: p, steps: steps, logRepo: logRepo}
}

// Start runs the steps sequentially.
// If a step fails, it triggers the compensation of all previously successful steps.
func (o *Orchestrator) Start(ctx context.Context) error {
	var successfulSteps []Step

	Record(ctx, o.logRepo, o.purchase, checkoutlog.StatusStarted, "", "")

	for _, step := range o.steps {
		if err := o.execute(ctx, step); err != nil {
			slog.WarnContext(ctx, "checkout step failed, rolling back",
				"checkout_id", o.purchase.CheckoutID, "step", step.Name(), "error", err)
			Record(ctx, o.logRepo, o.purchase, checkoutlog.StatusFailed, step.Name(), err.Error())
			o.rollback(ctx, successfulSteps)
			return err
		}
		Record(ctx, o.logRepo, o.purchase, checkoutlog.StatusStepDone, step.Name(), "")
		// Track successful step for potential compensation (LIFO)
		successfulSteps = append(successfulSteps, step)
	}

	return nil
}

func (o *Orchestrator) execute(ctx context.Context, step Step) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "checkout."+step.Name())
	defer span.End()
	span.SetAttributes(
		attribute.String("checkout.id", o.purchase.CheckoutID),
		attribute.String("product.id", o.purchase.Product.ID),
	)

	slog.DebugContext(ctx, "executing checkout step", "checkout_id", o.purchase.CheckoutID, "step", step.Name())
	if err := step.Execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to compensate checkout step",
				"checkout_id", o.purchase.CheckoutID, "step", step.Name(), "error", err)
		}
	}
}

// Record appends a log entry for p. Failures to write are logged, never returned.
func Record(ctx context.Context, repo checkoutlog.Repository, p *Purchase, status checkoutlog.Status, step, detail string) {
	if repo == nil {
		return
	}
	entry := checkoutlog.NewEntry(ctx, p.CheckoutID, p.VisitorID, p.Product.ID, status, step, detail)
	if err := repo.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to write checkout log", "checkout_id", p.CheckoutID, "status", status, "error", err)
	}
}
