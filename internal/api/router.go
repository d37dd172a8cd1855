// Package api wires the HTTP surface: router, middleware, request parsing and
// response encoding.
package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmolenaar/wealth-tracker/internal/api/handlers"
	custommiddleware "github.com/jmolenaar/wealth-tracker/internal/api/middleware"
	"github.com/jmolenaar/wealth-tracker/internal/config"
	"github.com/jmolenaar/wealth-tracker/internal/service"
)

// Services bundles the service-layer dependencies of the router.
type Services struct {
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Valuation   *service.ValuationService
	Price       *service.PriceService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(services.Asset)
			r.Get("/", assetHandler.AllAssets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/asset/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerAsset)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/valuation", func(r chi.Router) {
			valuationHandler := handlers.NewValuationHandler(services.Valuation)
			r.Get("/history", valuationHandler.History)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Price)
			r.Post("/refresh", priceHandler.RefreshAll)

			r.Route("/refresh/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/", priceHandler.RefreshAsset)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(services.Settings)
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.UpdateSettings)
		})
	})

	return r
}
