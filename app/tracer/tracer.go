package tracer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Telemetry owns the installed providers and the Prometheus scrape handler.
type Telemetry struct {
	MetricsHandler http.Handler
	tp             *trace.TracerProvider
	mp             *metric.MeterProvider
}

// InitTracingAndMetrics installs global trace and meter providers. Metrics are
// exported through Prometheus; MetricsHandler serves them.
func InitTracingAndMetrics(serviceName string) (*Telemetry, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tp := trace.NewTracerProvider(trace.WithResource(res))
	otel.SetTracerProvider(tp)

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(mp)

	return &Telemetry{
		MetricsHandler: promhttp.Handler(),
		tp:             tp,
		mp:             mp,
	}, nil
}

// Shutdown flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(t.tp.Shutdown(ctx), t.mp.Shutdown(ctx))
}
