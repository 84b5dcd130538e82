package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// SalesReport datos de un reporte del historial de ventas.
type SalesReport struct {
	StoreName   string
	GeneratedAt time.Time
	Sales       []entity.SaleSummary
	GrandTotal  decimal.Decimal
}

// HistoryPDFGenerator genera la representación en PDF del historial.
type HistoryPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, report SalesReport) ([]byte, error)
}

// HistoryXMLExporter exporta el historial como documento XML.
type HistoryXMLExporter interface {
	ExportSales(ctx context.Context, report SalesReport) ([]byte, error)
}
