package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine busca una línea de la exposición Prometheus por nombre, labels parciales y valor.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func scrape(t *testing.T, p *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestBusinessMetrics_Exposicion(t *testing.T) {
	p, err := NewProvider()
	require.NoError(t, err)
	defer func() { assert.NoError(t, p.Shutdown(context.Background())) }()

	bm, err := NewBusinessMetrics(p.MeterProvider(), "tienda")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	Observe(ctx, bm, "sales", "register_sale", start, nil)
	Observe(ctx, bm, "sales", "register_sale", start, nil)
	Observe(ctx, bm, "sales", "register_sale", start, errors.New("stock insuficiente"))

	out := scrape(t, p)
	assertMetricLine(t, out, `tienda_operations_total`, `domain="sales".*operation="register_sale".*status="success"`, `2`)
	assertMetricLine(t, out, `tienda_operations_total`, `domain="sales".*operation="register_sale".*status="error"`, `1`)
	assertMetricLine(t, out, `tienda_operation_duration_seconds_count`, `domain="sales".*operation="register_sale".*status="success"`, `2`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		Observe(context.Background(), bm, "sales", "list_sales", time.Now(), nil)
	})
}

func TestHTTPMiddleware(t *testing.T) {
	p, err := NewProvider()
	require.NoError(t, err)

	app := fiber.New()
	app.Use(HTTPMiddleware(p.MeterProvider(), "tienda"))
	app.Get("/api/sales/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sales/42", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	out := scrape(t, p)
	assertMetricLine(t, out, `tienda_http_requests_total`, `method="GET".*path="/api/sales/:id".*status_code="204"`, `1`)
}
