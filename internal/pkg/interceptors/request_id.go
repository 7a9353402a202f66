// Package interceptors holds http.RoundTripper decorators for outgoing calls
// to the store API.
package interceptors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/digital-storefront/internal/pkg/interceptors/constants"
)

// RequestIDTransport copies the inbound request ID onto outgoing requests.
type RequestIDTransport struct {
	Next http.RoundTripper
}

func (t RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := GetRequestID(req.Context())
	if requestID != "" && req.Header.Get(constants.HeaderXRequestId) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(constants.HeaderXRequestId, requestID)
	}

	slog.DebugContext(req.Context(), "store api call",
		"request_id", requestID,
		"method", req.Method,
		"url", req.URL.String(),
	)

	return next(t.Next).RoundTrip(req)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID stores id for later propagation.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

func next(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
