package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportUseCase genera el historial de ventas como documento (PDF o XML).
type ReportUseCase struct {
	history   *HistoryUseCase
	pdf       HistoryPDFGenerator
	xml       HistoryXMLExporter
	storeName string
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(history *HistoryUseCase, pdf HistoryPDFGenerator, xml HistoryXMLExporter, storeName string) *ReportUseCase {
	return &ReportUseCase{history: history, pdf: pdf, xml: xml, storeName: storeName, now: time.Now}
}

// BuildReport arma los datos del reporte con el total acumulado.
func (uc *ReportUseCase) BuildReport(ctx context.Context) (SalesReport, error) {
	list, err := uc.history.ListSales(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	grand := decimal.Zero
	for _, s := range list {
		grand = grand.Add(s.Total)
	}
	return SalesReport{
		StoreName:   uc.storeName,
		GeneratedAt: uc.now(),
		Sales:       list,
		GrandTotal:  grand,
	}, nil
}

// GeneratePDF devuelve el historial en PDF.
func (uc *ReportUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	report, err := uc.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateSalesReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return out, nil
}

// GenerateXML devuelve el historial en XML.
func (uc *ReportUseCase) GenerateXML(ctx context.Context) ([]byte, error) {
	report, err := uc.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.xml.ExportSales(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("export xml: %w", err)
	}
	return out, nil
}
