package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (reposición o devolución)
	MovementTypeOUT        = "OUT"        // salida (venta)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste absoluto manual
)

// StockMovement describe un cambio de stock aplicado sobre un producto.
type StockMovement struct {
	ProductID int64
	Type      string
	Quantity  int // unidades movidas (siempre positivo)
	Before    int
	After     int
	Reference string // venta, ajuste manual, etc.
	CreatedAt time.Time
	CreatedBy int64
}
