package dto

import (
	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

// MaxSaleItems limita el tamaño del cuerpo de una venta.
const MaxSaleItems = 200

// SaleItemRequest una línea de venta: producto y cantidad.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// RegisterSaleRequest body para POST /api/sales.
// Si UserID se omite, la venta se asocia al usuario autenticado.
// Las reglas de negocio (fecha, productos, categorías, cantidades) las aplica el validador de ventas.
type RegisterSaleRequest struct {
	Date     string            `json:"date" example:"04/03/2025"`
	Items    []SaleItemRequest `json:"items"`
	UserID   *int64            `json:"user_id,omitempty"`
	Discount decimal.Decimal   `json:"discount"`
}

// Validate solo acota el tamaño del pedido.
func (r *RegisterSaleRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Date, validation.Length(0, 20)),
		validation.Field(&r.Items, validation.Length(0, MaxSaleItems)),
	))
}

// RegisterSaleResponse ID de la venta registrada.
type RegisterSaleResponse struct {
	ID    int64           `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// SaleSummaryResponse una venta del historial en forma legible.
type SaleSummaryResponse struct {
	ID       int64           `json:"id"`
	Date     string          `json:"date"`
	Items    []string        `json:"items"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	UserID   int64           `json:"user_id"`
	UserName string          `json:"user_name"`
}

// SaleListResponse historial de ventas.
type SaleListResponse struct {
	Items []SaleSummaryResponse `json:"items"`
	Total int                   `json:"total"`
}

// StockCheckResponse resultado de la verificación previa de stock.
type StockCheckResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Available bool  `json:"available"`
}

// InsufficientStockResponse detalle de ErrInsufficientStock.
type InsufficientStockResponse struct {
	ErrorResponse
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}
