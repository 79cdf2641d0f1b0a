package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records use case outcomes. Domains are "auth" and "records";
// status is "success" or "error".
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordAuthentication counts one authentication attempt. Scheme is "basic" or
	// "bearer"; outcome is "success" or a failure reason such as "invalid_token".
	RecordAuthentication(ctx context.Context, scheme, outcome string)
}

type businessMetrics struct {
	operations      metric.Int64Counter
	durations       metric.Float64Histogram
	authentications metric.Int64Counter
}

// NewBusinessMetrics registers the business instruments on meterProvider, prefixing
// every instrument name with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	b := &businessMetrics{}

	var err error
	if b.operations, err = meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Use case invocations by domain, operation and status"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	if b.durations, err = meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Use case latency in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	if b.authentications, err = meter.Int64Counter(
		namespace+"_authentications_total",
		metric.WithDescription("Authentication attempts by scheme and outcome"),
		metric.WithUnit("{attempt}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create authentication counter: %w", err)
	}

	return b, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durations.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordAuthentication(ctx context.Context, scheme, outcome string) {
	b.authentications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scheme", scheme),
		attribute.String("outcome", outcome),
	))
}

type noopBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that discards everything. It is
// used when METRICS_ENABLED is false.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return noopBusinessMetrics{}
}

func (noopBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (noopBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

func (noopBusinessMetrics) RecordAuthentication(context.Context, string, string) {}
