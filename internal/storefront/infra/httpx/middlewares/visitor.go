package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcmexdev/digital-storefront/internal/pkg/interceptors/constants"
)

const visitorCookieMaxAge = 30 * 24 * 60 * 60

// Visitor identifies the browser by the sf_visitor cookie, issuing a new id
// when the cookie is missing or malformed.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitorID string
		if c, err := r.Cookie(constants.CookieVisitorID); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				visitorID = c.Value
			}
		}
		if visitorID == "" {
			visitorID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     constants.CookieVisitorID,
				Value:    visitorID,
				Path:     "/",
				MaxAge:   visitorCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), constants.ContextKeyVisitorID, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetVisitorID returns the visitor id stored by Visitor, or "".
func GetVisitorID(ctx context.Context) string {
	id, _ := ctx.Value(constants.ContextKeyVisitorID).(string)
	return id
}
