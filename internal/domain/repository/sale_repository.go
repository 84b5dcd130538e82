package repository

import (
	"context"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// SaleRepository es el almacén durable de ventas y sus líneas.
// Create escribe cabecera y líneas como una unidad y asigna un ID estrictamente creciente
// que nunca se reutiliza, ni siquiera tras DeleteAll.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// List devuelve las ventas ordenadas por ID ascendente, con sus líneas.
	List(ctx context.Context) ([]*entity.Sale, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	ExistsForProduct(ctx context.Context, productID int64) (bool, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
}
