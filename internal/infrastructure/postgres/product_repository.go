package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, quantity, category, min_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna ID y timestamps.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, price, quantity, category, min_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Price, product.Quantity, product.Category, product.MinStock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidProduct, err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List devuelve el catálogo ordenado por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos. La cantidad no se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, category = $4, min_stock = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.Category, product.MinStock,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto. Si alguna línea de venta lo referencia devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto %d figura en ventas registradas", domain.ErrConflict, id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReduceStock descuenta qty en una sola sentencia condicional: nunca deja stock negativo.
func (r *ProductRepo) ReduceStock(ctx context.Context, id int64, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: la cantidad a descontar debe ser mayor a cero", domain.ErrInvalidInput)
	}
	query := `
		UPDATE products SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`
	var after int
	err := r.q.QueryRow(ctx, query, id, qty).Scan(&after)
	if err == nil {
		return after, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return r.stockFailure(ctx, id, domain.ErrInsufficientStock)
	}
	return 0, fmt.Errorf("reduce stock: %w", err)
}

// IncreaseStock suma qty sin superar entity.StockMax.
func (r *ProductRepo) IncreaseStock(ctx context.Context, id int64, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: la cantidad a sumar debe ser mayor a cero", domain.ErrInvalidInput)
	}
	query := `
		UPDATE products SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND quantity + $2 <= $3
		RETURNING quantity`
	var after int
	err := r.q.QueryRow(ctx, query, id, qty, entity.StockMax).Scan(&after)
	if err == nil {
		return after, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return r.stockFailure(ctx, id, fmt.Errorf("%w: el stock resultante supera el máximo de %d", domain.ErrInvalidStock, entity.StockMax))
	}
	return 0, fmt.Errorf("increase stock: %w", err)
}

// SetStock fija la cantidad absoluta (ajuste manual).
func (r *ProductRepo) SetStock(ctx context.Context, id int64, qty int) error {
	if err := entity.ValidateStockLevel(qty); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = NOW() WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// stockFailure distingue producto inexistente de condición no cumplida tras un UPDATE sin filas.
func (r *ProductRepo) stockFailure(ctx context.Context, id int64, cause error) (int, error) {
	var current int
	err := r.q.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return current, cause
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Category, &p.MinStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
