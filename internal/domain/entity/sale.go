package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout es la representación canónica de la fecha de una venta (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// SaleLineItem es una línea de venta. UnitPrice se captura al validar, nunca se relee después.
type SaleLineItem struct {
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal devuelve Quantity × UnitPrice.
func (li SaleLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Sale representa una venta completa (cabecera + líneas). Inmutable una vez persistida.
type Sale struct {
	ID        int64
	Date      time.Time // fecha calendario, sin componente horario
	UserID    int64
	Items     []SaleLineItem
	Discount  decimal.Decimal // porcentaje 0..100
	Total     decimal.Decimal // total con descuento aplicado
	CreatedAt time.Time
}

// FormattedDate devuelve la fecha en DateLayout.
func (s *Sale) FormattedDate() string {
	return s.Date.Format(DateLayout)
}

// ProductIDs devuelve los IDs de producto de las líneas, en el orden de las líneas.
func (s *Sale) ProductIDs() []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// SaleSummary es la proyección legible de una venta para el historial.
type SaleSummary struct {
	ID       int64
	Date     string   // DD/MM/YYYY
	Items    []string // "{nombre} (x{cantidad})"
	Discount decimal.Decimal
	Total    decimal.Decimal
	UserID   int64
	UserName string
}
