package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sneha01vaish/BackendAPICartItem/internal/service"
	"github.com/sneha01vaish/BackendAPICartItem/internal/session"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/health"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/middleware"
)

// RouterConfig carries the cross-cutting pieces the router mounts.
type RouterConfig struct {
	Logger        *slog.Logger
	Health        *health.Handler
	Metrics       *middleware.Metrics
	Gatherer      prometheus.Gatherer
	CORS          middleware.CORSConfig
	PprofCIDRs    []string
	CatalogMaxAge time.Duration
	// Verbose exposes internal error details in 500 responses.
	Verbose bool
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(products *service.ProductService, carts *service.CartService, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.NotFound(endpointNotFound)
	r.MethodNotAllowed(endpointNotFound)

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger, cfg.Verbose))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler)
	}
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/api/health", cfg.Health.LivenessHandler())
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	productHandler := NewProductHandler(products, cfg.Logger, cfg.Verbose)
	cartHandler := NewCartHandler(carts, cfg.Logger, cfg.Verbose)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

		r.Get("/api/products", productHandler.ListProducts)
		r.Get("/api/products/{productId}", productHandler.GetProduct)
	})

	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(session.Middleware)
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Get("/api/cart", cartHandler.GetCart)
		r.Delete("/api/cart", cartHandler.ClearCart)

		r.Post("/api/cart/{productId}", cartHandler.AddItem)
		r.Put("/api/cart/{productId}", cartHandler.UpdateItem)
		r.Delete("/api/cart/{productId}", cartHandler.RemoveItem)
	})

	return r
}
