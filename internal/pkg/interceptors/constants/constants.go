package constants

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXRequestId = "X-Request-Id"
	CookieVisitorID  = "sf_visitor"

	// ContextKeyRequestID is the context key for the request ID.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyVisitorID is the context key for the storefront visitor ID.
	ContextKeyVisitorID contextKey = "visitor_id"
)
