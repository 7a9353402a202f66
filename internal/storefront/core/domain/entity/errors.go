package entity

import "errors"

var (
	ErrPurchaseInProgress = errors.New("another purchase is in progress")
	ErrNoProductSelected  = errors.New("no product selected")
	ErrProductNotFound    = errors.New("product not found")
	ErrWidgetClosed       = errors.New("checkout widget is closed")
	ErrCheckoutNotFound   = errors.New("checkout not found")
)

// BuyerFacing is implemented by errors whose message may be shown to the
// buyer as is. Other errors are replaced by a generic message.
type BuyerFacing interface {
	BuyerMessage() string
}
