package repository

import (
	"context"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error

	// ReduceStock resta qty de forma atómica y devuelve el stock resultante.
	// Falla con domain.ErrInsufficientStock si quedaría negativo y con domain.ErrNotFound si no existe.
	ReduceStock(ctx context.Context, id int64, qty int) (int, error)
	// IncreaseStock suma qty de forma atómica. Falla con domain.ErrInvalidStock si supera entity.StockMax.
	IncreaseStock(ctx context.Context, id int64, qty int) (int, error)
	// SetStock fija un valor absoluto (ajuste manual), validado en 0..entity.StockMax.
	SetStock(ctx context.Context, id int64, qty int) error
}
