package ports

import (
	"context"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

// StoreAPI is the external catalog and payments backend.
type StoreAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateCustomer(ctx context.Context, customer entity.Customer) (entity.RawResponse, error)
	CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.Order, error)
	VerifyPayment(ctx context.Context, req entity.PaymentVerification) (*entity.VerificationResult, error)
}
