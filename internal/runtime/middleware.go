package runtime

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	configpkg "github.com/drblury/msgmux/internal/runtime/config"
	loggingpkg "github.com/drblury/msgmux/internal/runtime/logging"
)

// DefaultMiddlewares returns the middleware chain enabled by cfg, in the
// order it should be applied: logging, tracing, metrics.
func DefaultMiddlewares(cfg *configpkg.Config, logger loggingpkg.ServiceLogger) []Middleware {
	if cfg == nil {
		return nil
	}
	normalized := cfg.WithDefaults()

	var chain []Middleware
	if normalized.LogMessages {
		chain = append(chain, LogMessagesMiddleware(logger))
	}
	if normalized.TracingEnabled {
		chain = append(chain, TracerMiddleware(normalized.TracerName))
	}
	if normalized.MetricsEnabled {
		chain = append(chain, MetricsMiddleware(nil, normalized.MetricsNamespace))
	}
	return chain
}

// LogMessagesMiddleware logs every dispatched message with its UUID, type,
// and metadata at debug level, and failures at error level.
func LogMessagesMiddleware(logger loggingpkg.ServiceLogger) Middleware {
	if logger == nil {
		logger = loggingpkg.Nop()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *Message) error {
			logger.Debug("dispatching message", loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"message_type": msg.Type,
				"metadata":     msg.Metadata,
			})

			err := next(ctx, msg)
			if err != nil {
				logger.Error("handler failed", err, loggingpkg.LogFields{
					"message_uuid": msg.UUID,
					"message_type": msg.Type,
				})
			}
			return err
		}
	}
}

// TracerMiddleware wraps each dispatch in an OpenTelemetry span carrying the
// message identity as attributes. The span's context is passed down to the
// handler so downstream calls join the trace.
func TracerMiddleware(tracerName string) Middleware {
	if tracerName == "" {
		tracerName = configpkg.DefaultTracerName
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *Message) error {
			tracer := otel.Tracer(tracerName)
			ctx, span := tracer.Start(
				ctx,
				"DispatchMessage",
				trace.WithAttributes(
					attribute.String("message.uuid", msg.UUID),
					attribute.String("message.type", msg.Type),
				),
			)
			defer span.End()

			err := next(ctx, msg)
			if err != nil {
				span.RecordError(err)
			}
			return err
		}
	}
}

// MetricsMiddleware records dispatch counts and durations with Prometheus.
// Passing a nil registerer uses prometheus.DefaultRegisterer. Registering the
// same namespace twice on one registerer panics, as MustRegister does.
func MetricsMiddleware(reg prometheus.Registerer, namespace string) Middleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = configpkg.DefaultMetricsNamespace
	}

	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "messages_total",
		Help:      "Messages dispatched, by message type and result.",
	}, []string{"message_type", "result"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "duration_seconds",
		Help:      "Handler execution time by message type.",
	}, []string{"message_type"})

	reg.MustRegister(dispatches, durations)

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *Message) error {
			start := time.Now()
			err := next(ctx, msg)

			result := "ok"
			if err != nil {
				result = "error"
			}
			dispatches.WithLabelValues(msg.Type, result).Inc()
			durations.WithLabelValues(msg.Type).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
