package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo guarda ventas completas (cabecera + líneas) en memoria.
// lastID nunca retrocede: los IDs no se reutilizan tras Delete o DeleteAll.
type SaleRepo struct {
	mu     sync.RWMutex
	m      map[int64]entity.Sale
	lastID int64
}

// NewSaleRepository construye el repositorio vacío.
func NewSaleRepository() *SaleRepo {
	return &SaleRepo{m: make(map[int64]entity.Sale)}
}

// Create asigna el siguiente ID y guarda la venta con sus líneas en una sola operación.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	sale.ID = r.lastID
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	r.m[sale.ID] = cloneSale(*sale)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	s = cloneSale(s)
	return &s, nil
}

// List devuelve las ventas ordenadas por ID ascendente.
func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Sale, 0, len(r.m))
	for _, s := range r.m {
		s = cloneSale(s)
		list = append(list, &s)
	}
	slices.SortFunc(list, func(a, b *entity.Sale) int { return cmpID(a.ID, b.ID) })
	return list, nil
}

// Delete elimina una venta y sus líneas; ErrNotFound si no existe.
func (r *SaleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

// DeleteAll vacía el historial sin reiniciar la secuencia de IDs.
func (r *SaleRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.m)
	return nil
}

// ExistsForProduct indica si alguna línea referencia el producto.
func (r *SaleRepo) ExistsForProduct(_ context.Context, productID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.m {
		for _, it := range s.Items {
			if it.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

// ExistsForUser indica si alguna venta está asociada al usuario.
func (r *SaleRepo) ExistsForUser(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.m {
		if s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func cloneSale(s entity.Sale) entity.Sale {
	s.Items = slices.Clone(s.Items)
	return s
}
