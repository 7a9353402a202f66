package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.Visitor)

		r.Get("/", handler.Index)
		r.Get("/api/products", handler.ListProducts)

		r.Route("/api/checkout", func(r chi.Router) {
			r.Get("/", handler.GetCheckout)
			r.Get("/history", handler.History)
			r.Post("/select", handler.SelectProduct)
			r.Post("/cancel", handler.CancelForm)
			r.Post("/fields/{field}/edit", handler.EditField)
			r.Post("/customer", handler.SubmitCustomer)
			r.Post("/acknowledge", handler.AcknowledgeSuccess)
		})

		r.Post("/api/widget/payment", handler.WidgetPayment)
		r.Post("/api/widget/dismiss", handler.WidgetDismiss)
	})
	return r
}
