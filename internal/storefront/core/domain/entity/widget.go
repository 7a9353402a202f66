package entity

import "context"

// Prefill holds the buyer details the widget shows pre-filled.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// WidgetOptions configures one checkout widget instance. Amount is in
// currency subunits. The handlers are not serialised; the page receives
// everything else.
type WidgetOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`

	Handler   func(ctx context.Context, payment PaymentVerification) `json:"-"`
	OnDismiss func(ctx context.Context)                              `json:"-"`
}
