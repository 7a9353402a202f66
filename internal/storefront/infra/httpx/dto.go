package httpx

import (
	"time"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/digital-storefront/internal/storefront/app"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

type SelectProductRequest struct {
	ProductID string `json:"productId"`
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type DismissRequest struct {
	OrderID string `json:"orderId"`
}

type ProductResponse struct {
	ID                     string `json:"_id"`
	Name                   string `json:"name"`
	ImageURL               string `json:"imageUrl"`
	Description            string `json:"description"`
	OriginalPrice          int64  `json:"originalPrice"`
	PurchasePrice          int64  `json:"purchasePrice"`
	FormattedOriginalPrice string `json:"formattedOriginalPrice"`
	FormattedPurchasePrice string `json:"formattedPurchasePrice"`
	FormattedSavings       string `json:"formattedSavings"`
	DiscountPercent        int64  `json:"discountPercent"`
	CreatedAt              string `json:"createdAt"`
}

// ConfirmationResponse is what the buyer sees after a verified payment.
type ConfirmationResponse struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	DriveLink  string `json:"driveLink"`
	AmountPaid string `json:"amountPaid"`
}

type CheckoutStateResponse struct {
	Loading             bool                  `json:"loading"`
	SelectedProduct     *ProductResponse      `json:"selectedProduct,omitempty"`
	ShowCustomerForm    bool                  `json:"showCustomerForm"`
	FormErrors          map[string]string     `json:"formErrors"`
	Submitting          bool                  `json:"submitting"`
	ProcessingProductID string                `json:"processingProductId,omitempty"`
	Widget              *entity.WidgetOptions `json:"widget,omitempty"`
	ShowPaymentSuccess  bool                  `json:"showPaymentSuccess"`
	Confirmation        *ConfirmationResponse `json:"confirmation,omitempty"`
	Notice              string                `json:"notice,omitempty"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Step      string    `json:"step,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	TraceID   string    `json:"traceId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func mapProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		ImageURL:               p.DisplayImage(),
		Description:            p.Description,
		OriginalPrice:          p.OriginalPrice,
		PurchasePrice:          p.PurchasePrice,
		FormattedOriginalPrice: formatINR(p.OriginalPrice),
		FormattedPurchasePrice: formatINR(p.PurchasePrice),
		FormattedSavings:       formatINR(p.Savings()),
		DiscountPercent:        p.DiscountPercent(),
		CreatedAt:              p.CreatedAt,
	}
}

func mapProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	return out
}

func mapState(s app.State) CheckoutStateResponse {
	resp := CheckoutStateResponse{
		Loading:             s.Loading,
		ShowCustomerForm:    s.ShowCustomerForm,
		FormErrors:          s.FormErrors,
		Submitting:          s.Submitting,
		ProcessingProductID: s.ProcessingProductID,
		Widget:              s.Widget,
		ShowPaymentSuccess:  s.ShowPaymentSuccess,
		Notice:              s.Notice,
	}
	if s.SelectedProduct != nil {
		p := mapProduct(*s.SelectedProduct)
		resp.SelectedProduct = &p
	}
	if s.ShowPaymentSuccess && s.PurchasedProduct != nil {
		resp.Confirmation = &ConfirmationResponse{
			ProductID:  s.PurchasedProduct.ID,
			Name:       s.PurchasedProduct.Name,
			DriveLink:  s.PurchasedProduct.DriveLink,
			AmountPaid: formatINR(s.PurchasedProduct.PurchasePrice),
		}
	}
	return resp
}

func mapHistory(entries []checkoutlog.Entry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryResponse{
			Status:    string(e.Status),
			Step:      e.Step,
			Detail:    e.Detail,
			TraceID:   e.TraceID,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
