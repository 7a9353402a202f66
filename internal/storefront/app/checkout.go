package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/digital-storefront/internal/coordinator"
	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/digital-storefront/internal/pkg/clock"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/normalize"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/validation"
)

const (
	msgCheckoutFailed     = "An error occurred during checkout. Please try again."
	msgPaymentCancelled   = "Payment cancelled"
	msgVerificationFailed = "Payment verification failed. Please contact support."
)

// DefaultAbandonAfter is how long a widget may stay open before the
// purchase is treated as abandoned.
const DefaultAbandonAfter = 30 * time.Minute

// buyerErrors may be shown to the buyer verbatim.
var buyerErrors = []error{
	entity.ErrPurchaseInProgress,
	entity.ErrNoProductSelected,
	entity.ErrProductNotFound,
	entity.ErrWidgetClosed,
	entity.ErrCheckoutNotFound,
	normalize.ErrCustomerIDNotFound,
}

// Config holds the merchant settings used to configure the checkout widget.
// AbandonAfter bounds how long an open widget holds the visitor's purchase;
// zero means DefaultAbandonAfter.
type Config struct {
	MerchantKey  string
	StoreName    string
	Currency     string
	ThemeColor   string
	NoticeTTL    time.Duration
	AbandonAfter time.Duration
}

// Deps are the collaborators of a checkout.
type Deps struct {
	API    ports.StoreAPI
	Widget ports.Widget
	Guard  ports.ProcessingGuard
	Log    checkoutlog.Repository // may be nil
	Clock  clock.Clock
}

// Notice is a transient message that clears itself after ExpiresAt.
type Notice struct {
	Message   string
	ExpiresAt time.Time
}

// State is a read-only copy of a visitor's checkout.
type State struct {
	Products            []entity.Product
	Loading             bool
	SelectedProduct     *entity.Product
	ShowCustomerForm    bool
	FormErrors          validation.FieldErrors
	Submitting          bool
	ProcessingProductID string
	Widget              *entity.WidgetOptions
	ShowPaymentSuccess  bool
	PurchasedProduct    *entity.Product
	Notice              string
	CheckoutID          string
}

// Checkout is the purchase flow of one visitor:
//
//	idle -> selecting -> customer form -> submitting -> widget open -> verifying -> success | error
//
// Network calls are made without holding mu, so reads stay responsive
// while a leg is in flight. The processing guard keeps a second purchase
// from starting until the current one ends.
type Checkout struct {
	visitorID string
	cfg       Config
	deps      Deps

	mu             sync.Mutex
	products       []entity.Product
	productsLoaded bool
	loading        bool
	selected       *entity.Product
	showForm       bool
	formErrors     validation.FieldErrors
	submitting     bool
	processingID   string
	purchase       *coordinator.Purchase
	widget         *entity.WidgetOptions
	widgetOpenedAt time.Time
	showSuccess    bool
	purchased      *entity.Product
	notice         Notice
	lastCheckoutID string
	lastSeen       time.Time
}

func NewCheckout(visitorID string, cfg Config, deps Deps) *Checkout {
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem()
	}
	if cfg.AbandonAfter <= 0 {
		cfg.AbandonAfter = DefaultAbandonAfter
	}
	return &Checkout{
		visitorID:  visitorID,
		cfg:        cfg,
		deps:       deps,
		formErrors: validation.FieldErrors{},
		lastSeen:   deps.Clock.Now(),
	}
}

// LoadProducts fetches the catalog the first time it is called. A failed
// load leaves the catalog empty and is retried on the next call.
func (c *Checkout) LoadProducts(ctx context.Context) ([]entity.Product, error) {
	c.mu.Lock()
	if c.productsLoaded {
		products := append([]entity.Product(nil), c.products...)
		c.mu.Unlock()
		return products, nil
	}
	c.loading = true
	c.mu.Unlock()

	products, err := c.deps.API.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		slog.ErrorContext(ctx, "failed to load products", "visitor_id", c.visitorID, "error", err)
		return nil, err
	}
	c.products = products
	c.productsLoaded = true
	return append([]entity.Product(nil), products...), nil
}

// Select starts a purchase of productID and opens the customer form.
func (c *Checkout) Select(ctx context.Context, productID string) error {
	if _, err := c.LoadProducts(ctx); err != nil {
		return err
	}
	c.reapAbandoned(ctx)

	c.mu.Lock()
	product, ok := c.findProduct(productID)
	if !ok {
		c.mu.Unlock()
		return entity.ErrProductNotFound
	}
	if c.processingID != "" && c.processingID != productID {
		c.mu.Unlock()
		return entity.ErrPurchaseInProgress
	}
	c.mu.Unlock()

	acquired, err := c.deps.Guard.Acquire(ctx, c.visitorID, productID)
	if err != nil {
		return fmt.Errorf("select product: %w", err)
	}
	if !acquired {
		return entity.ErrPurchaseInProgress
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &product
	c.showForm = true
	c.formErrors = validation.FieldErrors{}
	c.processingID = productID

	slog.InfoContext(ctx, "product selected", "visitor_id", c.visitorID, "product_id", productID)
	return nil
}

// CancelForm closes the customer form and clears the processing product.
// It is refused while the form is being submitted.
func (c *Checkout) CancelForm(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return entity.ErrPurchaseInProgress
	}
	c.showForm = false
	c.processingID = ""
	c.mu.Unlock()

	c.release(ctx)
	return nil
}

// EditField clears the error of a single form field.
func (c *Checkout) EditField(field string) {
	c.mu.Lock()
	c.formErrors.Clear(field)
	c.mu.Unlock()
}

// SubmitCustomer validates the buyer details and, when they are valid,
// creates the customer and the order and opens the checkout widget.
// Field errors are returned without any network call. The customer form
// is closed only once the widget is open; on failure it stays open so the
// buyer can retry.
func (c *Checkout) SubmitCustomer(ctx context.Context, customer entity.Customer) (validation.FieldErrors, error) {
	c.mu.Lock()
	if c.selected == nil || !c.showForm {
		c.mu.Unlock()
		return nil, entity.ErrNoProductSelected
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, entity.ErrPurchaseInProgress
	}

	if errs := validation.ValidateCustomer(customer); !errs.Valid() {
		c.formErrors = errs
		c.mu.Unlock()
		return errs, nil
	}

	p := &coordinator.Purchase{
		CheckoutID: uuid.NewString(),
		VisitorID:  c.visitorID,
		Product:    *c.selected,
		Customer:   customer,
	}
	c.submitting = true
	c.processingID = p.Product.ID
	c.purchase = p
	c.lastCheckoutID = p.CheckoutID
	c.mu.Unlock()

	// The legs run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	var opened entity.WidgetOptions
	steps := []coordinator.Step{
		coordinator.NewReserveProductStep(c.deps.Guard, p),
		coordinator.NewCreateCustomerStep(c.deps.API, p),
		coordinator.NewCreateOrderStep(c.deps.API, p),
		coordinator.NewOpenWidgetStep(c.deps.Widget, p, func(p *coordinator.Purchase) entity.WidgetOptions {
			opened = c.widgetOptions(p)
			return opened
		}),
	}

	slog.InfoContext(ctx, "starting checkout",
		"visitor_id", c.visitorID, "checkout_id", p.CheckoutID, "product_id", p.Product.ID)

	if err := coordinator.NewOrchestrator(p, steps, c.deps.Log).Start(ctx); err != nil {
		c.mu.Lock()
		c.submitting = false
		c.processingID = ""
		if c.purchase == p {
			c.purchase = nil
		}
		c.setNotice(noticeMessage(err, msgCheckoutFailed))
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.showForm = false
	if c.purchase == p {
		c.widget = &opened
		c.widgetOpenedAt = c.deps.Clock.Now()
	}
	c.mu.Unlock()

	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusWidgetOpen, "", p.Order.ID)
	return nil, nil
}

// HandleDismiss is the widget's dismiss callback.
func (c *Checkout) HandleDismiss(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	p := c.purchase
	if p == nil {
		c.mu.Unlock()
		return
	}
	c.purchase = nil
	c.widget = nil
	c.submitting = false
	c.processingID = ""
	c.setNotice(msgPaymentCancelled)
	c.mu.Unlock()

	c.release(ctx)
	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusCancelled, "", "")
	slog.InfoContext(ctx, "payment cancelled", "visitor_id", c.visitorID, "checkout_id", p.CheckoutID)
}

// HandlePaymentSuccess is the widget's success callback. It verifies the
// payment and shows the confirmation on success. Processing is cleared on
// every outcome.
func (c *Checkout) HandlePaymentSuccess(ctx context.Context, payment entity.PaymentVerification) {
	// The payment is already captured; verification must not be cut short
	// by the page going away.
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	p := c.purchase
	if p == nil || c.selected == nil {
		c.mu.Unlock()
		slog.WarnContext(ctx, "payment callback without an active checkout",
			"visitor_id", c.visitorID, "order_id", payment.OrderID)
		return
	}
	product := *c.selected
	c.widget = nil
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.processingID = ""
		if c.purchase == p {
			c.purchase = nil
		}
		c.mu.Unlock()
		c.release(ctx)
	}()

	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusVerifying, "", payment.PaymentID)

	res, err := c.deps.API.VerifyPayment(ctx, payment)
	if err != nil {
		slog.ErrorContext(ctx, "payment verification error",
			"checkout_id", p.CheckoutID, "order_id", payment.OrderID, "error", err)
		c.fail(ctx, p, noticeMessage(err, msgVerificationFailed))
		return
	}
	if !normalize.PaymentVerified(res) {
		slog.ErrorContext(ctx, "payment verification failed",
			"checkout_id", p.CheckoutID, "order_id", payment.OrderID, "message", res.Message)
		c.fail(ctx, p, msgVerificationFailed)
		return
	}

	c.mu.Lock()
	c.purchased = &product
	c.showSuccess = true
	c.mu.Unlock()

	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusCompleted, "", payment.PaymentID)
	slog.InfoContext(ctx, "payment verified",
		"checkout_id", p.CheckoutID, "product_id", product.ID, "payment_id", payment.PaymentID)
}

// AcknowledgeSuccess closes the confirmation view.
func (c *Checkout) AcknowledgeSuccess() {
	c.mu.Lock()
	c.showSuccess = false
	c.purchased = nil
	c.mu.Unlock()
}

// OwnsOrder reports whether this checkout has a widget open for orderID.
func (c *Checkout) OwnsOrder(orderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return orderID != "" && c.widget != nil && c.widget.OrderID == orderID
}

// LastCheckoutID is the id of the most recent purchase attempt, or "".
func (c *Checkout) LastCheckoutID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastCheckoutID
}

// Snapshot returns a copy of the current state. Expired notices are dropped.
func (c *Checkout) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.deps.Clock.Now()
	c.lastSeen = now
	if c.notice.Message != "" && !now.Before(c.notice.ExpiresAt) {
		c.notice = Notice{}
	}

	s := State{
		Products:            append([]entity.Product(nil), c.products...),
		Loading:             c.loading,
		ShowCustomerForm:    c.showForm,
		FormErrors:          make(validation.FieldErrors, len(c.formErrors)),
		Submitting:          c.submitting,
		ProcessingProductID: c.processingID,
		ShowPaymentSuccess:  c.showSuccess,
		Notice:              c.notice.Message,
		CheckoutID:          c.lastCheckoutID,
	}
	for k, v := range c.formErrors {
		s.FormErrors[k] = v
	}
	if c.selected != nil {
		p := *c.selected
		s.SelectedProduct = &p
	}
	if c.widget != nil {
		w := *c.widget
		s.Widget = &w
	}
	if c.purchased != nil {
		p := *c.purchased
		s.PurchasedProduct = &p
	}
	return s
}

// reapAbandoned cancels the purchase when its widget has been open for
// longer than AbandonAfter or its guard entry has expired. The widget is
// forgotten without running its callbacks. It reports whether it cancelled.
func (c *Checkout) reapAbandoned(ctx context.Context) bool {
	c.mu.Lock()
	p, w, openedAt := c.purchase, c.widget, c.widgetOpenedAt
	c.mu.Unlock()
	if p == nil || w == nil {
		return false
	}

	abandoned := !c.deps.Clock.Now().Before(openedAt.Add(c.cfg.AbandonAfter))
	if !abandoned {
		current, err := c.deps.Guard.Current(ctx, c.visitorID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read processing product", "visitor_id", c.visitorID, "error", err)
			return false
		}
		abandoned = current == ""
	}
	if !abandoned {
		return false
	}

	c.mu.Lock()
	if c.purchase != p || c.widget == nil {
		c.mu.Unlock()
		return false
	}
	c.purchase = nil
	c.widget = nil
	c.submitting = false
	c.processingID = ""
	c.mu.Unlock()

	c.deps.Widget.Forget(w.OrderID)
	c.release(ctx)
	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusCancelled, "", "abandoned")
	slog.InfoContext(ctx, "abandoned checkout cancelled",
		"visitor_id", c.visitorID, "checkout_id", p.CheckoutID, "order_id", w.OrderID)
	return true
}

func (c *Checkout) idleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen, c.processingID == "" && !c.submitting
}

func (c *Checkout) widgetOptions(p *coordinator.Purchase) entity.WidgetOptions {
	return entity.WidgetOptions{
		Key:         c.cfg.MerchantKey,
		Amount:      p.Product.PurchasePrice * 100,
		Currency:    c.cfg.Currency,
		Name:        c.cfg.StoreName,
		Description: "Purchase of " + p.Product.Name,
		OrderID:     p.Order.ID,
		Prefill: entity.Prefill{
			Name:    p.Customer.Name,
			Email:   p.Customer.Email,
			Contact: p.Customer.Phone,
		},
		Theme:     entity.Theme{Color: c.cfg.ThemeColor},
		Handler:   c.HandlePaymentSuccess,
		OnDismiss: c.HandleDismiss,
	}
}

func (c *Checkout) fail(ctx context.Context, p *coordinator.Purchase, msg string) {
	c.mu.Lock()
	c.setNotice(msg)
	c.mu.Unlock()
	coordinator.Record(ctx, c.deps.Log, p, checkoutlog.StatusFailed, "verify_payment", msg)
}

// setNotice must be called with mu held.
func (c *Checkout) setNotice(msg string) {
	c.notice = Notice{
		Message:   msg,
		ExpiresAt: c.deps.Clock.Now().Add(c.cfg.NoticeTTL),
	}
}

// findProduct must be called with mu held.
func (c *Checkout) findProduct(id string) (entity.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (c *Checkout) release(ctx context.Context) {
	if err := c.deps.Guard.Release(ctx, c.visitorID); err != nil {
		slog.ErrorContext(ctx, "failed to release processing product", "visitor_id", c.visitorID, "error", err)
	}
}

// noticeMessage returns the message of errors meant for the buyer and
// fallback for anything else, such as transport failures.
func noticeMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var shown entity.BuyerFacing
	if errors.As(err, &shown) {
		if msg := shown.BuyerMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	for _, known := range buyerErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}
