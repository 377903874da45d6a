package obs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const meterName = "github.com/helixarchive/common/pkg/obs"

type MetricsProvider struct {
	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry
	exporter *promexporter.Exporter
	config   Config
}

func newMetricsProvider(ctx context.Context, config Config) (*MetricsProvider, error) {
	if !config.MetricsEnabled {
		return &MetricsProvider{config: config}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
		promexporter.WithoutUnits(),
		promexporter.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return &MetricsProvider{
		provider: provider,
		registry: registry,
		exporter: exporter,
		config:   config,
	}, nil
}

func (mp *MetricsProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

func (mp *MetricsProvider) HTTPHandler() http.Handler {
	if mp.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(mp.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (mp *MetricsProvider) Registry() *prometheus.Registry {
	return mp.registry
}

func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.Shutdown(ctx)
}

func (mp *MetricsProvider) ForceFlush(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.ForceFlush(ctx)
}

func (mp *MetricsProvider) Counter(name, description, unit string) (metric.Int64Counter, error) {
	return mp.Meter(meterName).Int64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
}

func (mp *MetricsProvider) Histogram(name, description, unit string) (metric.Float64Histogram, error) {
	return mp.Meter(meterName).Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
}

// ValidationMetrics counts schema validation outcomes per event type, with
// failures broken down by the three fault categories of the error report.
type ValidationMetrics struct {
	validated metric.Int64Counter
	failed    metric.Int64Counter
}

func (mp *MetricsProvider) NewValidationMetrics() (*ValidationMetrics, error) {
	validated, err := mp.Counter(
		"event_payloads_validated_total",
		"Total number of event payloads validated against their schema.",
		"{payload}",
	)
	if err != nil {
		return nil, err
	}
	failed, err := mp.Counter(
		"event_payload_validation_failures_total",
		"Event payload validation failures, by event type and fault category.",
		"{failure}",
	)
	if err != nil {
		return nil, err
	}
	return &ValidationMetrics{validated: validated, failed: failed}, nil
}

// RecordSuccess counts a successfully validated payload.
func (vm *ValidationMetrics) RecordSuccess(ctx context.Context, eventType string) {
	vm.validated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("outcome", StatusOK),
	))
}

// RecordFailure counts a failed validation, one increment per fault category
// present in the report.
func (vm *ValidationMetrics) RecordFailure(ctx context.Context, eventType string, missing, mistyped, unexpected int) {
	vm.validated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("outcome", StatusError),
	))
	for category, count := range map[string]int{
		"missing":    missing,
		"mistyped":   mistyped,
		"unexpected": unexpected,
	} {
		if count > 0 {
			vm.failed.Add(ctx, int64(count), metric.WithAttributes(
				attribute.String("event_type", eventType),
				attribute.String("category", category),
			))
		}
	}
}
