// Package api is the HTTP adapter for the external catalog and payments API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jcmexdev/digital-storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/digital-storefront/internal/storefront/core/ports"
)

const DefaultBaseURL = "https://api.bintax.co.in/api"

const (
	opListProducts   = "list products"
	opCreateCustomer = "create customer"
	opCreateOrder    = "create order"
	opVerifyPayment  = "verify payment"
)

// fallbackMessages are used when a rejected request carries no message.
var fallbackMessages = map[string]string{
	opListProducts:   "failed to fetch products",
	opCreateCustomer: "failed to create customer",
	opCreateOrder:    "failed to create order",
	opVerifyPayment:  "failed to verify payment",
}

// validationError is an order rejected before it is sent.
type validationError string

func (e validationError) Error() string        { return string(e) }
func (e validationError) BuyerMessage() string { return string(e) }

var (
	ErrInvalidAmount      error = validationError("amount is required and must be greater than 0")
	ErrProductIDRequired  error = validationError("productId is required")
	ErrCustomerIDRequired error = validationError("customerId is required")
)

// Error is a request the API answered with a non-2xx status.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

// Error returns the server message alone.
func (e *Error) Error() string { return e.Message }

// BuyerMessage is the server message; rejections are shown to buyers as is.
func (e *Error) BuyerMessage() string { return e.Message }

// Client talks to the store API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ ports.StoreAPI     = (*Client)(nil)
	_ entity.BuyerFacing = (*Error)(nil)
)

// NewClient returns a client for baseURL. A nil httpClient gets a default
// one with the request ID and tracing transports installed.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: interceptors.Chain(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.do(ctx, opListProducts, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer entity.Customer) (entity.RawResponse, error) {
	body := entity.Customer{
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	}

	var raw any
	if err := c.do(ctx, opCreateCustomer, http.MethodPost, "/customers", body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.Order, error) {
	if err := validateOrder(req); err != nil {
		slog.ErrorContext(ctx, "order request rejected before sending",
			"product_id", req.ProductID, "amount", req.Amount, "error", err)
		return nil, err
	}

	var order entity.Order
	if err := c.do(ctx, opCreateOrder, http.MethodPost, "/payments/create-order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, req entity.PaymentVerification) (*entity.VerificationResult, error) {
	var res entity.VerificationResult
	if err := c.do(ctx, opVerifyPayment, http.MethodPost, "/payments/verify-payment", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func validateOrder(req entity.OrderRequest) error {
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}
	if req.ProductID == "" {
		return ErrProductIDRequired
	}
	if req.CustomerID == "" {
		return ErrCustomerIDRequired
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "store api unreachable", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(op, respBody),
		}
		slog.ErrorContext(ctx, "store api rejected request",
			"op", op, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage prefers the server supplied message over the generic one.
func errorMessage(op string, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallbackMessages[op]
}
