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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persiste ventas (tabla sales) y sus líneas (sale_items).
// Los IDs vienen de una secuencia BIGSERIAL: DELETE no la reinicia.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta cabecera y líneas en una transacción; si una línea falla no queda nada.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		header := `
			INSERT INTO sales (sale_date, user_id, discount, total)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`
		if err := tx.QueryRow(ctx, header, sale.Date, sale.UserID, sale.Discount, sale.Total).
			Scan(&sale.ID, &sale.CreatedAt); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		batch := &pgx.Batch{}
		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
			it := sale.Items[i]
			batch.Queue(`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
				it.SaleID, it.ProductID, it.Quantity, it.UnitPrice)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert sale items: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una venta con sus líneas; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, sale_date, user_id, discount, total, created_at FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.Date, &s.UserID, &s.Discount, &s.Total, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.items(ctx, `WHERE sale_id = $1`, id)
	if err != nil {
		return nil, err
	}
	s.Items = items[id]
	return &s, nil
}

// List devuelve todas las ventas por ID ascendente, con sus líneas (dos consultas).
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT id, sale_date, user_id, discount, total, created_at FROM sales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.UserID, &s.Discount, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	items, err := r.items(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

// Delete elimina una venta; sus líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll vacía el historial. No usa TRUNCATE ... RESTART IDENTITY: la secuencia sigue.
func (r *SaleRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales`); err != nil {
		return fmt.Errorf("delete all sales: %w", err)
	}
	return nil
}

// ExistsForProduct indica si alguna línea referencia el producto.
func (r *SaleRepo) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)`, productID)
}

// ExistsForUser indica si alguna venta está asociada al usuario.
func (r *SaleRepo) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sales WHERE user_id = $1)`, userID)
}

func (r *SaleRepo) exists(ctx context.Context, query string, id int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}

// items agrupa las líneas por sale_id, en orden de inserción.
func (r *SaleRepo) items(ctx context.Context, where string, args ...any) (map[int64][]entity.SaleLineItem, error) {
	query := `SELECT sale_id, product_id, quantity, unit_price FROM sale_items ` + where + ` ORDER BY sale_id, line_no`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	out := make(map[int64][]entity.SaleLineItem)
	for rows.Next() {
		var it entity.SaleLineItem
		if err := rows.Scan(&it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, rows.Err()
}
