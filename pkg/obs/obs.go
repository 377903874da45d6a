package obs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles logging, metrics, and tracing for a service. It is
// initialized once at process start.
type Observability struct {
	config       Config
	tracing      *TracingProvider
	metrics      *MetricsProvider
	logging      *LoggingProvider
	initErr      error
	shutdownOnce sync.Once
}

var (
	globalObs *Observability
	globalMu  sync.RWMutex
)

func Init(ctx context.Context, config Config) (*Observability, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if globalObs != nil {
		return globalObs, nil
	}

	obs := &Observability{config: config}

	var err error
	if obs.logging, err = newLoggingProvider(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoggingInitFailed, err)
	}
	if obs.tracing, err = newTracingProvider(ctx, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTracingInitFailed, err)
	}
	if obs.metrics, err = newMetricsProvider(ctx, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetricsInitFailed, err)
	}

	obs.logging.Info(ctx, "observability initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"otlp_endpoint", config.OTLPEndpoint,
		"metrics_enabled", config.MetricsEnabled,
	)

	globalObs = obs
	return obs, nil
}

func MustInit(ctx context.Context, config Config) *Observability {
	obs, err := Init(ctx, config)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize observability: %v", err))
	}
	return obs
}

func Global() *Observability {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalObs
}

func (o *Observability) Shutdown(ctx context.Context) error {
	var shutdownErr error

	o.shutdownOnce.Do(func() {
		var errs []error

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if o.tracing != nil {
			if err := o.tracing.ForceFlush(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
			}
			if err := o.tracing.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to shutdown tracing: %w", err))
			}
		}

		if o.metrics != nil {
			if err := o.metrics.ForceFlush(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to flush metrics: %w", err))
			}
			if err := o.metrics.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to shutdown metrics: %w", err))
			}
		}

		if o.logging != nil {
			if err := o.logging.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to shutdown logging: %w", err))
			}
		}

		if len(errs) > 0 {
			shutdownErr = fmt.Errorf("%w: %v", ErrShutdownFailed, errs)
			return
		}

		if o.logging != nil {
			o.logging.Info(shutdownCtx, "observability shutdown completed")
		}
	})

	return shutdownErr
}

func Shutdown(ctx context.Context) error {
	obs := Global()
	if obs == nil {
		return ErrNotInitialized
	}
	return obs.Shutdown(ctx)
}

func (o *Observability) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if o.tracing == nil {
		return otel.Tracer(name, opts...)
	}
	return o.tracing.Tracer(name, opts...)
}

func (o *Observability) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if o.metrics == nil {
		return otel.Meter(name, opts...)
	}
	return o.metrics.Meter(name, opts...)
}

func (o *Observability) Logger() *LoggingProvider {
	return o.logging
}

func (o *Observability) TracingProvider() *TracingProvider {
	return o.tracing
}

func (o *Observability) MetricsProvider() *MetricsProvider {
	return o.metrics
}

func (o *Observability) Config() Config {
	return o.config
}

func Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	obs := Global()
	if obs == nil {
		return otel.Tracer(name, opts...)
	}
	return obs.Tracer(name, opts...)
}

func Meter(name string, opts ...metric.MeterOption) metric.Meter {
	obs := Global()
	if obs == nil {
		return otel.Meter(name, opts...)
	}
	return obs.Meter(name, opts...)
}
