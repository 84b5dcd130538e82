// Package memory implementa los puertos de persistencia en memoria (demo y tests).
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo guarda productos en un mapa protegido por RWMutex. Devuelve siempre copias.
type ProductRepo struct {
	mu     sync.RWMutex
	m      map[int64]entity.Product
	lastID int64
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{m: make(map[int64]entity.Product)}
}

// Create asigna ID y timestamps y guarda el producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == 0 {
		r.lastID++
		product.ID = r.lastID
	} else {
		if _, ok := r.m[product.ID]; ok {
			return domain.ErrDuplicate
		}
		r.lastID = max(r.lastID, product.ID)
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.m[product.ID] = *product
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// List devuelve los productos ordenados por ID.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.m))
	for _, p := range r.m {
		list = append(list, &p)
	}
	slices.SortFunc(list, func(a, b *entity.Product) int { return cmpID(a.ID, b.ID) })
	return list, nil
}

// Update reemplaza los datos descriptivos. El stock no se toca: se maneja con ReduceStock/IncreaseStock/SetStock.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = product.Name
	cur.Price = product.Price
	cur.Category = product.Category
	cur.MinStock = product.MinStock
	cur.UpdatedAt = time.Now()
	r.m[product.ID] = cur
	product.Quantity = cur.Quantity
	product.UpdatedAt = cur.UpdatedAt
	return nil
}

// Delete elimina el producto; ErrNotFound si no existe.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

// ReduceStock descuenta qty bajo el lock del repositorio.
func (r *ProductRepo) ReduceStock(_ context.Context, id int64, qty int) (int, error) {
	return r.apply(id, func(cur int) (int, error) { return inventory.Reduce(cur, qty) })
}

// IncreaseStock suma qty con tope entity.StockMax.
func (r *ProductRepo) IncreaseStock(_ context.Context, id int64, qty int) (int, error) {
	return r.apply(id, func(cur int) (int, error) { return inventory.Increase(cur, qty) })
}

// SetStock fija la cantidad absoluta.
func (r *ProductRepo) SetStock(_ context.Context, id int64, qty int) error {
	if err := entity.ValidateStockLevel(qty); err != nil {
		return err
	}
	_, err := r.apply(id, func(int) (int, error) { return qty, nil })
	return err
}

func (r *ProductRepo) apply(id int64, fn func(cur int) (int, error)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.m[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	next, err := fn(p.Quantity)
	if err != nil {
		return p.Quantity, err
	}
	p.Quantity = next
	p.UpdatedAt = time.Now()
	r.m[id] = p
	return next, nil
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
