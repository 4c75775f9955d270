package api

import (
	"fxcache/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(currencyHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/", currencyHandler.Welcome)
	router.Get("/health", currencyHandler.Health)

	router.Route("/api/v1/currency", func(r chi.Router) {
		r.Get("/rates", currencyHandler.GetLatest)
		r.Get("/rates/{currency}", currencyHandler.GetCurrencyRate)
		r.Get("/rates-hash", currencyHandler.GetRatesHash)
		r.Post("/fetch", currencyHandler.TriggerFetch)
		r.Get("/queue-status", currencyHandler.QueueStatus)
		r.Get("/metadata", currencyHandler.GetMetadata)
	})
	return router
}
