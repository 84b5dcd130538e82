// Package xml exporta el historial de ventas como documento XML.
package xml

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/gestor-tienda/internal/application/sales"
)

var _ sales.HistoryXMLExporter = (*EtreeExporter)(nil)

// EtreeExporter implementa sales.HistoryXMLExporter con beevik/etree.
//
//	<historialVentas tienda="..." generado="...">
//	  <venta id="1" fecha="10/03/2025" vendedor="ana" vendedorId="1">
//	    <producto>lápiz (x2)</producto>
//	    <descuento>0.00</descuento>
//	    <total>1000.00</total>
//	  </venta>
//	  <totalGeneral ventas="1">1000.00</totalGeneral>
//	</historialVentas>
type EtreeExporter struct {
	indent int
}

// NewEtreeExporter construye el exportador con indentación de 2 espacios.
func NewEtreeExporter() *EtreeExporter { return &EtreeExporter{indent: 2} }

// ExportSales serializa el reporte.
func (e *EtreeExporter) ExportSales(_ context.Context, report sales.SalesReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("historialVentas")
	root.CreateAttr("tienda", report.StoreName)
	root.CreateAttr("generado", report.GeneratedAt.Format(time.RFC3339))

	for _, s := range report.Sales {
		v := root.CreateElement("venta")
		v.CreateAttr("id", strconv.FormatInt(s.ID, 10))
		v.CreateAttr("fecha", s.Date)
		v.CreateAttr("vendedor", s.UserName)
		v.CreateAttr("vendedorId", strconv.FormatInt(s.UserID, 10))
		for _, item := range s.Items {
			v.CreateElement("producto").SetText(item)
		}
		v.CreateElement("descuento").SetText(s.Discount.StringFixed(2))
		v.CreateElement("total").SetText(s.Total.StringFixed(2))
	}

	total := root.CreateElement("totalGeneral")
	total.CreateAttr("ventas", strconv.Itoa(len(report.Sales)))
	total.SetText(report.GrandTotal.StringFixed(2))

	doc.Indent(e.indent)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar historial: %w", err)
	}
	return out, nil
}
