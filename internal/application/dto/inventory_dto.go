package dto

import (
	"github.com/jellydator/validation"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/products/:id/movements.
// IN suma Quantity, OUT la resta y ADJUSTMENT la fija como valor absoluto.
type RegisterMovementRequest struct {
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference,omitempty"`
}

// Validate valida tipo y rango de la cantidad.
func (r *RegisterMovementRequest) Validate() error {
	minQty := 1
	if r.Type == entity.MovementTypeADJUSTMENT {
		minQty = 0
	}
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required,
			validation.In(entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT)),
		validation.Field(&r.Quantity, validation.Min(minQty), validation.Max(entity.StockMax)),
		validation.Field(&r.Reference, validation.Length(0, 200)),
	))
}

// StockMovementResponse resultado de un movimiento aplicado.
type StockMovementResponse struct {
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
}

// ReplenishmentSuggestionDTO representa un producto en o bajo su stock mínimo
// con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	Category          string `json:"category"`
	CurrentStock      int    `json:"current_stock"`
	MinStock          int    `json:"min_stock"`
	IdealStock        int    `json:"ideal_stock"`         // MinStock * 1.5, tope StockMax
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
