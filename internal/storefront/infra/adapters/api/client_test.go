package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/normalize"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        map[string]any
}

func newServer(t *testing.T, status int, response string, rec *recorded) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.method = r.Method
			rec.path = r.URL.Path
			rec.contentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &rec.body)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", srv.Client())
}

func TestListProducts(t *testing.T) {
	t.Parallel()
	var rec recorded
	client := newServer(t, http.StatusOK, `[{"_id":"p1","name":"Course","originalPrice":999,"purchasePrice":499,"driveLink":"https://drive/x"}]`, &rec)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/products", rec.path)
	require.Len(t, products, 1)
	assert.Equal(t, entity.Product{
		ID:            "p1",
		Name:          "Course",
		OriginalPrice: 999,
		PurchasePrice: 499,
		DriveLink:     "https://drive/x",
	}, products[0])
}

func TestListProductsFailure(t *testing.T) {
	t.Parallel()
	client := newServer(t, http.StatusInternalServerError, `oops`, nil)

	_, err := client.ListProducts(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.EqualError(t, err, "failed to fetch products")
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()
	var rec recorded
	client := newServer(t, http.StatusCreated, `{"data":{"_id":"c9"}}`, &rec)

	raw, err := client.CreateCustomer(context.Background(), entity.Customer{Name: "A", Email: "a@b.com", Phone: "9876543210"})
	require.NoError(t, err)

	assert.Equal(t, "/api/customers", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.Equal(t, map[string]any{"name": "A", "email": "a@b.com", "phone": "9876543210"}, rec.body)

	id, err := normalize.CustomerID(raw)
	require.NoError(t, err)
	assert.Equal(t, "c9", id)
}

func TestCreateCustomerRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     string
	}{
		{name: "server message", response: `{"message":"duplicate email"}`, want: "duplicate email"},
		{name: "no message", response: `{}`, want: "failed to create customer"},
		{name: "not json", response: `<html>`, want: "failed to create customer"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newServer(t, http.StatusConflict, tt.response, nil)

			_, err := client.CreateCustomer(context.Background(), entity.Customer{})
			assert.EqualError(t, err, tt.want)

			var shown entity.BuyerFacing
			require.True(t, errors.As(err, &shown))
			assert.Equal(t, tt.want, shown.BuyerMessage())
		})
	}
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()
	var rec recorded
	client := newServer(t, http.StatusOK, `{"id":"o1","amount":49900,"currency":"INR","receipt":"r1"}`, &rec)

	order, err := client.CreateOrder(context.Background(), entity.OrderRequest{Amount: 499, ProductID: "p1", CustomerID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/create-order", rec.path)
	assert.Equal(t, map[string]any{"amount": float64(499), "productId": "p1", "customerId": "c1"}, rec.body)
	assert.Equal(t, &entity.Order{ID: "o1", Amount: 49900, Currency: "INR", Receipt: "r1"}, order)
}

func TestCreateOrderValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  entity.OrderRequest
		err  error
	}{
		{name: "zero amount", req: entity.OrderRequest{ProductID: "p1", CustomerID: "c1"}, err: ErrInvalidAmount},
		{name: "negative amount", req: entity.OrderRequest{Amount: -1, ProductID: "p1", CustomerID: "c1"}, err: ErrInvalidAmount},
		{name: "missing product", req: entity.OrderRequest{Amount: 1, CustomerID: "c1"}, err: ErrProductIDRequired},
		{name: "missing customer", req: entity.OrderRequest{Amount: 1, ProductID: "p1"}, err: ErrCustomerIDRequired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var rec recorded
			client := newServer(t, http.StatusOK, `{}`, &rec)

			_, err := client.CreateOrder(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, rec.path, "no request expected")

			var shown entity.BuyerFacing
			assert.True(t, errors.As(err, &shown))
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	t.Parallel()
	var rec recorded
	client := newServer(t, http.StatusOK, `{"status":"success"}`, &rec)

	res, err := client.VerifyPayment(context.Background(), entity.PaymentVerification{
		OrderID:   "o1",
		PaymentID: "pay1",
		Signature: "sig1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/verify-payment", rec.path)
	assert.Equal(t, map[string]any{
		"razorpay_order_id":   "o1",
		"razorpay_payment_id": "pay1",
		"razorpay_signature":  "sig1",
	}, rec.body)
	assert.True(t, normalize.PaymentVerified(res))
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil)
	_, err := client.ListProducts(context.Background())
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), opListProducts)

	var shown entity.BuyerFacing
	assert.False(t, errors.As(err, &shown), "transport errors are not shown to buyers")
}
