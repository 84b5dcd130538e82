package inventory

import (
	"fmt"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// Reduce calcula el stock tras una salida de qty unidades (servicio de dominio).
// NuevoStock = StockActual - Cantidad, nunca negativo.
func Reduce(current, qty int) (int, error) {
	if qty <= 0 {
		return current, fmt.Errorf("%w: la cantidad a descontar debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if current < qty {
		return current, domain.ErrInsufficientStock
	}
	return current - qty, nil
}

// Increase calcula el stock tras una entrada de qty unidades, con tope entity.StockMax.
func Increase(current, qty int) (int, error) {
	if qty <= 0 {
		return current, fmt.Errorf("%w: la cantidad a sumar debe ser mayor a cero", domain.ErrInvalidInput)
	}
	next := current + qty
	if next > entity.StockMax {
		return current, fmt.Errorf("%w: el stock resultante (%d) supera el máximo de %d", domain.ErrInvalidStock, next, entity.StockMax)
	}
	return next, nil
}
