package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/sneha01vaish/BackendAPICartItem/internal/config"
	"github.com/sneha01vaish/BackendAPICartItem/internal/event"
	handler "github.com/sneha01vaish/BackendAPICartItem/internal/handler/http"
	"github.com/sneha01vaish/BackendAPICartItem/internal/repository"
	"github.com/sneha01vaish/BackendAPICartItem/internal/repository/memory"
	redisrepo "github.com/sneha01vaish/BackendAPICartItem/internal/repository/redis"
	"github.com/sneha01vaish/BackendAPICartItem/internal/service"
	"github.com/sneha01vaish/BackendAPICartItem/internal/session"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/database"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/health"
	pkgkafka "github.com/sneha01vaish/BackendAPICartItem/pkg/kafka"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/middleware"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/tracing"
)

const (
	serviceName    = "storefront-api"
	serviceVersion = "1.0.0"
	metricsPrefix  = "storefront"
)

// App wires together all dependencies and runs the storefront API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	shutdownTracer tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTelEndpoint,
		SampleRate:     cfg.OTelSampleRate,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracer = shutdownTracer

	products, err := loadCatalog(cfg)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	logger.Info("catalog loaded",
		slog.Int("products", products.Len()),
		slog.String("source", catalogSource(cfg)),
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(context.Context) error {
		if products.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})

	carts, err := a.cartRepository(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	var publisher service.EventPublisher = event.NoopPublisher{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	productService := service.NewProductService(products, logger)
	cartService := service.NewCartService(carts, products, publisher, service.NewMetrics(metricsPrefix, registry), logger)

	corsCfg := middleware.DefaultCORSConfig(session.HeaderName)
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(productService, cartService, handler.RouterConfig{
		Logger:        logger,
		Health:        healthHandler,
		Metrics:       middleware.NewMetrics(metricsPrefix, registry),
		Gatherer:      registry,
		CORS:          corsCfg,
		PprofCIDRs:    cfg.PprofAllowedCIDRs,
		CatalogMaxAge: cfg.CatalogMaxAge(),
		Verbose:       cfg.IsDevelopment(),
	})

	logger.Info("health checks registered", slog.Any("checks", healthHandler.Names()))

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

func loadCatalog(cfg *config.Config) (*memory.ProductRepository, error) {
	if cfg.CatalogFile != "" {
		products, err := memory.LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return products, nil
	}

	products, err := memory.NewDefaultProductRepository()
	if err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	return products, nil
}

func catalogSource(cfg *config.Config) string {
	if cfg.CatalogFile != "" {
		return cfg.CatalogFile
	}
	return "built-in"
}

// cartRepository builds the configured cart store and registers its
// readiness check.
func (a *App) cartRepository(ctx context.Context, h *health.Handler) (repository.CartRepository, error) {
	if a.cfg.CartStore != config.CartStoreRedis {
		a.logger.Info("using in-memory cart store")
		return memory.NewCartRepository(), nil
	}

	redisCfg := database.DefaultRedisConfig(a.cfg.RedisAddr)
	redisCfg.Password = a.cfg.RedisPass
	redisCfg.DB = a.cfg.RedisDB

	rdb, err := database.NewRedisClient(ctx, redisCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb

	repo := redisrepo.NewCartRepository(rdb)
	h.Register("redis", repo.Ping)

	a.logger.Info("connected to Redis",
		slog.String("addr", a.cfg.RedisAddr),
		slog.Int("db", a.cfg.RedisDB),
	)
	return repo, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeAll()

	a.logger.Info("application shutdown complete")
	return nil
}

// closeAll releases the Kafka producer, the Redis client and the tracer.
// It is safe to call on a partially built App.
func (a *App) closeAll() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.rdb = nil
	}

	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracer(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
		a.shutdownTracer = nil
	}
}
