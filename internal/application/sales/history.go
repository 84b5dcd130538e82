package sales

import (
	"context"
	"fmt"
	"iter"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// HistoryUseCase lectura y borrado del historial de ventas.
type HistoryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	log         *logger.Logger
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *HistoryUseCase {
	return &HistoryUseCase{saleRepo: saleRepo, productRepo: productRepo, userRepo: userRepo, log: log}
}

// Sales recorre el historial en orden de ID. Cada range vuelve a leer el almacenamiento,
// así que la secuencia puede recorrerse varias veces. Un error de lectura se entrega una
// sola vez y termina el recorrido.
func (uc *HistoryUseCase) Sales(ctx context.Context) iter.Seq2[entity.SaleSummary, error] {
	return func(yield func(entity.SaleSummary, error) bool) {
		labels, err := uc.loadLabels(ctx)
		if err != nil {
			yield(entity.SaleSummary{}, err)
			return
		}
		list, err := uc.saleRepo.List(ctx)
		if err != nil {
			yield(entity.SaleSummary{}, fmt.Errorf("list sales: %w", err))
			return
		}
		for _, s := range list {
			if !yield(labels.summarize(s), nil) {
				return
			}
		}
	}
}

// ListSales devuelve el historial completo.
func (uc *HistoryUseCase) ListSales(ctx context.Context) ([]entity.SaleSummary, error) {
	var out []entity.SaleSummary
	for s, err := range uc.Sales(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// GetSale devuelve el resumen de una venta o domain.ErrNotFound.
func (uc *HistoryUseCase) GetSale(ctx context.Context, id int64) (*entity.SaleSummary, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	labels, err := uc.loadLabels(ctx)
	if err != nil {
		return nil, err
	}
	summary := labels.summarize(s)
	return &summary, nil
}

// DeleteSale elimina una venta y sus líneas. No devuelve stock (ver UndoSaleUseCase).
func (uc *HistoryUseCase) DeleteSale(ctx context.Context, id int64) error {
	if err := uc.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("sale_id", id).Msg("venta eliminada del historial")
	return nil
}

// DeleteAllSales vacía el historial. El stock no cambia y la secuencia de IDs no se reinicia.
func (uc *HistoryUseCase) DeleteAllSales(ctx context.Context) error {
	if err := uc.saleRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all sales: %w", err)
	}
	uc.log.Warn().Msg("historial de ventas borrado")
	return nil
}

type labelIndex struct {
	products map[int64]string
	users    map[int64]string
}

func (uc *HistoryUseCase) loadLabels(ctx context.Context) (*labelIndex, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	idx := &labelIndex{
		products: make(map[int64]string, len(products)),
		users:    make(map[int64]string, len(users)),
	}
	for _, p := range products {
		idx.products[p.ID] = p.Name
	}
	for _, u := range users {
		idx.users[u.ID] = u.Name
	}
	return idx, nil
}

func (idx *labelIndex) summarize(s *entity.Sale) entity.SaleSummary {
	items := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, fmt.Sprintf("%s (x%d)", label(idx.products, it.ProductID), it.Quantity))
	}
	return entity.SaleSummary{
		ID:       s.ID,
		Date:     s.FormattedDate(),
		Items:    items,
		Discount: s.Discount,
		Total:    s.Total,
		UserID:   s.UserID,
		UserName: label(idx.users, s.UserID),
	}
}

// label devuelve el nombre o "ID n" si la entidad ya no existe.
func label(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("ID %d", id)
}
