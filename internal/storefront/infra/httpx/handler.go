package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jcmexdev/digital-storefront/internal/storefront/app"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/validation"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/adapters/api"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/httpx/middlewares"
)

// msgStoreUnavailable replaces errors that are not meant for buyers.
const msgStoreUnavailable = "The store is temporarily unavailable. Please try again."

// WidgetCallbacks receives the checkout widget's callbacks posted back by
// the page and exposes the script the page must load.
type WidgetCallbacks interface {
	ScriptURL() string
	Complete(ctx context.Context, payment entity.PaymentVerification) error
	Dismiss(ctx context.Context, orderID string) error
}

// PageConfig holds the branding rendered into the storefront page.
type PageConfig struct {
	StoreName  string
	ThemeColor string
}

// Handler serves the storefront page and the checkout JSON API.
type Handler struct {
	store  *app.Storefront
	widget WidgetCallbacks
	page   PageConfig
	tmpl   *template.Template
}

func NewHandler(store *app.Storefront, widget WidgetCallbacks, page PageConfig) *Handler {
	return &Handler{
		store:  store,
		widget: widget,
		page:   page,
		tmpl:   pageTemplate,
	}
}

// Index renders the storefront page. A catalog failure renders an empty
// product grid.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	checkout := h.checkout(r)
	products, _ := checkout.LoadProducts(r.Context())

	data := pageData{
		StoreName:  h.page.StoreName,
		ThemeColor: h.page.ThemeColor,
		ScriptURL:  h.widget.ScriptURL(),
		Products:   mapProducts(products),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render storefront page", "error", err)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.checkout(r).LoadProducts(r.Context())
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapState(h.checkout(r).Snapshot()))
}

func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var req SelectProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id_required", "productId is required")
		return
	}

	checkout := h.checkout(r)
	if err := checkout.Select(r.Context(), req.ProductID); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	checkout := h.checkout(r)
	if err := checkout.CancelForm(r.Context()); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

func (h *Handler) EditField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	if !validation.IsField(field) {
		writeError(w, http.StatusNotFound, "unknown_field", field)
		return
	}

	checkout := h.checkout(r)
	checkout.EditField(field)
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

// SubmitCustomer answers 422 with the field errors when the details are
// invalid, and otherwise with the state holding the opened widget options.
func (h *Handler) SubmitCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	checkout := h.checkout(r)
	fieldErrs, err := checkout.SubmitCustomer(r.Context(), entity.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	switch {
	case err != nil:
		writeCheckoutError(w, err)
	case !fieldErrs.Valid():
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid_customer",
			Message: "customer details are invalid",
			Fields:  fieldErrs,
		})
	default:
		writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
	}
}

func (h *Handler) AcknowledgeSuccess(w http.ResponseWriter, r *http.Request) {
	checkout := h.checkout(r)
	checkout.AcknowledgeSuccess()
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.History(r.Context(), middlewares.GetVisitorID(r.Context()))
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapHistory(entries))
}

// WidgetPayment receives the widget's success payload. Only the visitor
// whose widget is open for the order may complete it.
func (h *Handler) WidgetPayment(w http.ResponseWriter, r *http.Request) {
	var req entity.PaymentVerification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "invalid_payment",
			"razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
		return
	}

	checkout := h.checkout(r)
	if !checkout.OwnsOrder(req.OrderID) {
		writeCheckoutError(w, entity.ErrCheckoutNotFound)
		return
	}
	if err := h.widget.Complete(r.Context(), req); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

func (h *Handler) WidgetDismiss(w http.ResponseWriter, r *http.Request) {
	var req DismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	checkout := h.checkout(r)
	if !checkout.OwnsOrder(req.OrderID) {
		writeCheckoutError(w, entity.ErrCheckoutNotFound)
		return
	}
	if err := h.widget.Dismiss(r.Context(), req.OrderID); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapState(checkout.Snapshot()))
}

func (h *Handler) checkout(r *http.Request) *app.Checkout {
	return h.store.Checkout(middlewares.GetVisitorID(r.Context()))
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	switch {
	case errors.Is(err, entity.ErrPurchaseInProgress):
		writeError(w, http.StatusConflict, "purchase_in_progress", err.Error())
	case errors.Is(err, entity.ErrNoProductSelected):
		writeError(w, http.StatusConflict, "no_product_selected", err.Error())
	case errors.Is(err, entity.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, entity.ErrCheckoutNotFound):
		writeError(w, http.StatusNotFound, "checkout_not_found", err.Error())
	case errors.Is(err, entity.ErrWidgetClosed):
		writeError(w, http.StatusServiceUnavailable, "widget_unavailable", err.Error())
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, "store_api_error", apiErr.Message)
	default:
		writeError(w, http.StatusBadGateway, "store_unavailable", msgStoreUnavailable)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
