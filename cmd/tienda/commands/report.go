package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// Tipos de reporte.
const (
	ReportPDF = "pdf"
	ReportXML = "xml"
)

// RunReport genera el historial en PDF o XML. out "-" escribe en Writer.
func RunReport(ctx context.Context, uc *sales.ReportUseCase, log *logger.Logger, kind, out string, io IOTuple) error {
	var (
		b   []byte
		err error
	)
	switch kind {
	case ReportPDF:
		b, err = uc.GeneratePDF(ctx)
	case ReportXML:
		b, err = uc.GenerateXML(ctx)
	default:
		return fmt.Errorf("tipo de reporte %q inválido (pdf|xml)", kind)
	}
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = io.Writer.Write(b)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	log.Info().Str("file", out).Int("bytes", len(b)).Msg("reporte generado")
	_, _ = fmt.Fprintf(io.Writer, "Reporte guardado en %s\n", out)
	return nil
}
