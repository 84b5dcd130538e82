package dto

import (
	"time"

	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
	MinStock int             `json:"min_stock"`
}

// Validate aplica las reglas de forma; las reglas de negocio las repite entity.Product.Validate.
func (r *CreateProductRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, notBlank, validation.Length(entity.ProductNameMin, entity.ProductNameMax)),
		validation.Field(&r.Price, positiveDecimal),
		validation.Field(&r.Quantity, validation.Min(0), validation.Max(entity.StockMax)),
		validation.Field(&r.Category, validation.Required, notBlank, validation.Length(1, 50)),
		validation.Field(&r.MinStock, validation.Min(0), validation.Max(entity.StockMax)),
	))
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	MinStock *int             `json:"min_stock"`
}

// Validate valida solo los campos presentes.
func (r *UpdateProductRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, notBlank, validation.Length(entity.ProductNameMin, entity.ProductNameMax)),
		validation.Field(&r.Price, positiveDecimal),
		validation.Field(&r.Category, validation.NilOrNotEmpty, notBlank, validation.Length(1, 50)),
		validation.Field(&r.MinStock, validation.Min(0), validation.Max(entity.StockMax)),
	))
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
