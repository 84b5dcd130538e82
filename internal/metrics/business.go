package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Estados de una operación de negocio.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics registra conteo y duración de operaciones de negocio.
// domain: "sales", "inventory", "auth"; operation: "register_sale", "undo_sale", etc.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
}

// NewBusinessMetrics crea los instrumentos <namespace>_operations_total y
// <namespace>_operation_duration_seconds.
func NewBusinessMetrics(mp metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := mp.Meter(namespace)

	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total de operaciones de negocio"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("crear contador de operaciones: %w", err)
	}

	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duración de operaciones de negocio en segundos"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("crear histograma de duración: %w", err)
	}

	return &businessMetrics{operations: operations, durations: durations}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, metric.WithAttributes(attrs(domain, operation, status)...))
}

func (b *businessMetrics) RecordDuration(ctx context.Context, domain, operation string, d time.Duration, status string) {
	b.durations.Record(ctx, d.Seconds(), metric.WithAttributes(attrs(domain, operation, status)...))
}

func attrs(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics descarta todo (CLI y tests).
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics devuelve la implementación vacía.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

// Observe registra conteo y duración de una operación según err.
func Observe(ctx context.Context, bm BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	bm.RecordOperation(ctx, domain, operation, status)
	bm.RecordDuration(ctx, domain, operation, time.Since(start), status)
}
