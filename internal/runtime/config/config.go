package config

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// DefaultMetricsNamespace prefixes the Prometheus metric names.
	DefaultMetricsNamespace = "msgmux"

	// DefaultTracerName is the instrumentation name used for dispatch spans.
	DefaultTracerName = "msgmux-dispatch"
)

// Config groups the observability settings applied by the default middleware
// chain. The zero value disables everything; a registry built from it behaves
// like a plain lookup table.
type Config struct {
	// LogMessages enables debug logging of every dispatched message,
	// including its UUID, type, and metadata.
	LogMessages bool

	// MetricsEnabled wires Prometheus dispatch counters and a duration
	// histogram into the dispatch path.
	MetricsEnabled bool
	// MetricsNamespace overrides the metric name prefix. Defaults to
	// DefaultMetricsNamespace.
	MetricsNamespace string

	// TracingEnabled wraps every dispatch in an OpenTelemetry span.
	TracingEnabled bool
	// TracerName overrides the instrumentation name. Defaults to
	// DefaultTracerName.
	TracerName string
}

// Prometheus namespace charset, see prometheus/common model.MetricNameRE.
var metricsNamespaceRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Validate checks the configuration values. It reports every problem it
// finds, joined into a single error.
func (c Config) Validate() error {
	var errs []error

	if c.MetricsNamespace != "" && !metricsNamespaceRE.MatchString(c.MetricsNamespace) {
		errs = append(errs, fmt.Errorf("metrics: invalid namespace %q", c.MetricsNamespace))
	}
	if c.MetricsNamespace != "" && !c.MetricsEnabled {
		errs = append(errs, errors.New("metrics: namespace set but metrics are disabled"))
	}
	if c.TracerName != "" && !c.TracingEnabled {
		errs = append(errs, errors.New("tracer: name set but tracing is disabled"))
	}

	return errors.Join(errs...)
}

// WithDefaults returns a copy of the config with fallback values applied.
func (c Config) WithDefaults() Config {
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = DefaultMetricsNamespace
	}
	if c.TracerName == "" {
		c.TracerName = DefaultTracerName
	}
	return c
}

// ValidateConfig validates cfg and wraps any failure in a
// ConfigValidationError. A nil config is valid and means "all defaults".
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return ConfigValidationError{Err: err}
	}
	return nil
}

// ConfigValidationError marks an error as originating from config validation.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "msgmux: invalid config: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}
