package coordinator

import (
	"context"
	"fmt"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/normalize"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
)

// Purchase is the data shared by the steps of one checkout. Earlier steps
// fill in what later steps consume.
type Purchase struct {
	CheckoutID string
	VisitorID  string
	Product    entity.Product
	Customer   entity.Customer

	CustomerID string
	Order      *entity.Order
}

// OrderRequest is the create-order payload. The amount is the purchase
// price, never the original price.
func (p *Purchase) OrderRequest() entity.OrderRequest {
	return entity.OrderRequest{
		Amount:     p.Product.PurchasePrice,
		ProductID:  p.Product.ID,
		CustomerID: p.CustomerID,
	}
}

// --- ReserveProductStep ---

type ReserveProductStep struct {
	guard    ports.ProcessingGuard
	purchase *Purchase
}

func NewReserveProductStep(guard ports.ProcessingGuard, p *Purchase) *ReserveProductStep {
	return &ReserveProductStep{guard: guard, purchase: p}
}

func (s *ReserveProductStep) Name() string { return "reserve_product" }

func (s *ReserveProductStep) Execute(ctx context.Context) error {
	ok, err := s.guard.Acquire(ctx, s.purchase.VisitorID, s.purchase.Product.ID)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrPurchaseInProgress
	}
	return nil
}

// Compensate clears the processing product so the buyer can start again.
func (s *ReserveProductStep) Compensate(ctx context.Context) error {
	return s.guard.Release(ctx, s.purchase.VisitorID)
}

// --- CreateCustomerStep ---

type CreateCustomerStep struct {
	api      ports.StoreAPI
	purchase *Purchase
}

func NewCreateCustomerStep(api ports.StoreAPI, p *Purchase) *CreateCustomerStep {
	return &CreateCustomerStep{api: api, purchase: p}
}

func (s *CreateCustomerStep) Name() string { return "create_customer" }

func (s *CreateCustomerStep) Execute(ctx context.Context) error {
	res, err := s.api.CreateCustomer(ctx, s.purchase.Customer)
	if err != nil {
		return err
	}
	id, err := normalize.CustomerID(res)
	if err != nil {
		return err
	}
	s.purchase.CustomerID = id
	return nil
}

// Compensate is a no-op: customers are not deleted upstream.
func (s *CreateCustomerStep) Compensate(ctx context.Context) error { return nil }

// --- CreateOrderStep ---

type CreateOrderStep struct {
	api      ports.StoreAPI
	purchase *Purchase
}

func NewCreateOrderStep(api ports.StoreAPI, p *Purchase) *CreateOrderStep {
	return &CreateOrderStep{api: api, purchase: p}
}

func (s *CreateOrderStep) Name() string { return "create_order" }

func (s *CreateOrderStep) Execute(ctx context.Context) error {
	order, err := s.api.CreateOrder(ctx, s.purchase.OrderRequest())
	if err != nil {
		return err
	}
	if order == nil || order.ID == "" {
		return fmt.Errorf("create order: empty order id in response")
	}
	s.purchase.Order = order
	return nil
}

// Compensate is a no-op: an unpaid order simply expires upstream.
func (s *CreateOrderStep) Compensate(ctx context.Context) error { return nil }

// --- OpenWidgetStep ---

type OpenWidgetStep struct {
	widget   ports.Widget
	purchase *Purchase
	options  func(p *Purchase) entity.WidgetOptions
}

// NewOpenWidgetStep builds the widget options from the purchase once the
// order exists.
func NewOpenWidgetStep(widget ports.Widget, p *Purchase, options func(p *Purchase) entity.WidgetOptions) *OpenWidgetStep {
	return &OpenWidgetStep{widget: widget, purchase: p, options: options}
}

func (s *OpenWidgetStep) Name() string { return "open_widget" }

func (s *OpenWidgetStep) Execute(ctx context.Context) error {
	return s.widget.Open(ctx, s.options(s.purchase))
}

func (s *OpenWidgetStep) Compensate(ctx context.Context) error { return nil }
