// Package observability provides optional OpenTelemetry tracing and metrics
// for the query service. Everything is noop unless providers are supplied.
package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName identifies this library's tracer.
	TracerName = "github.com/samuelhany-cpu/NL-TO-SQL"
	// MeterName identifies this library's meter.
	MeterName = "github.com/samuelhany-cpu/NL-TO-SQL"
)

// Config holds the observability configuration for the service.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider. If nil, tracing
	// is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider. If nil, metrics
	// collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName identifies this service in traces and metrics.
	ServiceName string

	// EnableServerTiming enables the Server-Timing HTTP response header.
	EnableServerTiming bool

	tracer  *Tracer
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the service name for identification.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithServerTiming enables the Server-Timing response header.
func WithServerTiming() Option {
	return func(c *Config) {
		c.EnableServerTiming = true
	}
}

// NewConfig creates a configuration with the given options and initializes
// the tracer and metrics, falling back to noop instances.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{ServiceName: "nl-to-sql"}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.TracerProvider != nil {
		cfg.tracer = NewTracer(cfg.TracerProvider, cfg.ServiceName)
	} else {
		cfg.tracer = NewNoopTracer()
	}

	if cfg.MeterProvider != nil {
		cfg.metrics = NewMetrics(cfg.MeterProvider)
	} else {
		cfg.metrics = NewNoopMetrics()
	}

	return cfg
}

// Tracer returns the configured tracer, never nil.
func (c *Config) Tracer() *Tracer {
	return c.tracer
}

// Metrics returns the configured metrics, never nil.
func (c *Config) Metrics() *Metrics {
	return c.metrics
}
