package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/sneha01vaish/BackendAPICartItem/pkg/config"
)

// Cart store backends.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Config holds all configuration for the storefront API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"5000" validate:"min=1,max=65535"`

	// Cart storage
	CartStore string `env:"CART_STORE" envDefault:"memory" validate:"oneof=memory redis"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"hostname_port"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	// Catalog
	CatalogFile         string `env:"CATALOG_FILE" envDefault:""`
	CatalogCacheSeconds int    `env:"CATALOG_CACHE_SECONDS" envDefault:"60" validate:"gte=0"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`

	// HTTP surface
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:"," validate:"dive,cidr"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}

// IsDevelopment reports whether internal error details may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CatalogMaxAge is the Cache-Control max-age for catalog reads.
func (c *Config) CatalogMaxAge() time.Duration {
	return time.Duration(c.CatalogCacheSeconds) * time.Second
}
