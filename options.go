package nipper

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/nipper/config"
	"github.com/zero-day-ai/nipper/store"
)

// Option configures a Parser.
type Option func(*parserConfig)

// parserConfig holds configuration for a Parser instance.
type parserConfig struct {
	config     *config.Config
	configPath string
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	store      store.Store
}

// WithConfig sets the parser configuration.
func WithConfig(cfg *config.Config) Option {
	return func(c *parserConfig) {
		c.config = cfg
	}
}

// WithConfigFile loads the parser configuration from a nipper.yaml file, or
// from a directory containing one. It takes precedence over WithConfig.
func WithConfigFile(path string) Option {
	return func(c *parserConfig) {
		c.configPath = path
	}
}

// WithLogger sets a custom logger. If not provided, log output is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *parserConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. Each parse and each part gets a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *parserConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the parse metrics.
func WithMeter(meter metric.Meter) Option {
	return func(c *parserConfig) {
		c.meter = meter
	}
}

// WithStore sets the report cache. It takes precedence over the cache
// section of the configuration. The caller keeps ownership of the store.
func WithStore(s store.Store) Option {
	return func(c *parserConfig) {
		c.store = s
	}
}
