package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/domain"
)

// StockMax es el tope de unidades en inventario por producto.
const StockMax = 1000

// Límites del nombre de producto (columna VARCHAR(100)).
const (
	ProductNameMin = 3
	ProductNameMax = 100
)

// Product representa un producto del catálogo con su stock disponible.
// Quantity solo cambia vía ReduceStock/IncreaseStock/SetStock del repositorio.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal // precio unitario de venta
	Quantity  int             // 0..StockMax
	Category  string
	MinStock  int // umbral para alertas de stock bajo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate verifica las reglas de negocio del producto.
func (p *Product) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidProduct)
	}
	if n := utf8.RuneCountInString(name); n < ProductNameMin || n > ProductNameMax {
		return fmt.Errorf("%w: el nombre debe tener entre %d y %d caracteres", domain.ErrInvalidProduct, ProductNameMin, ProductNameMax)
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidPrice
	}
	if err := ValidateStockLevel(p.Quantity); err != nil {
		return err
	}
	if p.MinStock < 0 || p.MinStock > StockMax {
		return fmt.Errorf("%w: el stock mínimo debe estar entre 0 y %d", domain.ErrInvalidStock, StockMax)
	}
	if strings.TrimSpace(p.Category) == "" {
		return domain.ErrEmptyCategory
	}
	return nil
}

// IsLowStock indica si la cantidad disponible está en o por debajo del stock mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// ValidateStockLevel verifica 0 <= q <= StockMax.
func ValidateStockLevel(q int) error {
	if q < 0 {
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidStock)
	}
	if q > StockMax {
		return fmt.Errorf("%w: la cantidad no puede ser mayor a %d", domain.ErrInvalidStock, StockMax)
	}
	return nil
}
