package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMiddleware registra <namespace>_http_requests_total y la duración por método, ruta y status.
// Usa el patrón de ruta (/api/sales/:id), no la URL real, para acotar la cardinalidad.
func HTTPMiddleware(mp metric.MeterProvider, namespace string) fiber.Handler {
	meter := mp.Meter(namespace)

	requests, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total de peticiones HTTP"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("Duración de peticiones HTTP en segundos"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" {
			path = "unknown"
		}
		opt := metric.WithAttributes(
			attribute.String("method", c.Method()),
			attribute.String("path", path),
			attribute.String("status_code", strconv.Itoa(status)),
		)
		requests.Add(c.UserContext(), 1, opt)
		durations.Record(c.UserContext(), time.Since(start).Seconds(), opt)
		return err
	}
}
