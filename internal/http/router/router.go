package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/storefront/docs"
	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/storefront/internal/http/middleware"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Options struct {
	Handlers *handlers.Handlers
	// Tokens guards the admin routes. Admin routes are not mounted when nil.
	Tokens  *auth.Tokens
	Limiter *rl.Limiter
	Metrics http.Handler
	Logger  *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := opts.Handlers

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(logger))

	r.Get("/healthz", h.HealthHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(mw.RateLimit(opts.Limiter, logger))
		}

		r.Get("/products", h.SearchProductsHandler)
		r.Get("/products/{id}", h.GetProductHandler)
		r.Post("/products/{id}/buy", h.BuyNowHandler)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCartHandler)
			r.Delete("/", h.ClearCartHandler)
			r.Post("/items", h.AddToCartHandler)
			r.Patch("/items/{id}", h.ChangeQuantityHandler)
			r.Delete("/items/{id}", h.RemoveFromCartHandler)
			r.Post("/checkout", h.CheckoutHandler)
		})

		r.Post("/login", h.LoginHandler)

		if opts.Tokens != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(mw.RequireRole(opts.Tokens, auth.RoleAdmin))
				r.Post("/products/{id}/restock", h.RestockHandler)
				r.Post("/catalog/reset", h.ResetCatalogHandler)
			})
		}
	})

	return r
}
