package sales

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// UndoSaleUseCase revierte una venta: devuelve el stock de cada línea y elimina la venta.
type UndoSaleUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	locker      *inventory.StockLocker
	metrics     metrics.BusinessMetrics
	log         *logger.Logger
}

// NewUndoSaleUseCase construye el caso de uso.
func NewUndoSaleUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	locker *inventory.StockLocker,
	bm metrics.BusinessMetrics,
	log *logger.Logger,
) *UndoSaleUseCase {
	return &UndoSaleUseCase{saleRepo: saleRepo, productRepo: productRepo, locker: locker, metrics: bm, log: log}
}

// UndoSale devuelve el stock vendido y borra la venta. Si algo falla a mitad de camino
// se deshace lo aplicado: el stock queda como antes y la venta sigue en el historial.
func (uc *UndoSaleUseCase) UndoSale(ctx context.Context, saleID int64) (err error) {
	start := time.Now()
	defer func() { metrics.Observe(ctx, uc.metrics, "sales", "undo_sale", start, err) }()

	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return domain.NewPersistenceError(err)
	}
	if s == nil {
		return domain.ErrNotFound
	}

	unlock := uc.locker.Lock(s.ProductIDs()...)
	defer unlock()

	// Releer bajo el bloqueo: otra reversión pudo ganar la carrera.
	s, err = uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return domain.NewPersistenceError(err)
	}
	if s == nil {
		return domain.ErrNotFound
	}

	restored := make([]entity.SaleLineItem, 0, len(s.Items))
	for _, it := range s.Items {
		if _, err := uc.productRepo.IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return uc.compensate(ctx, saleID, restored, err)
		}
		restored = append(restored, it)
	}

	if err := uc.saleRepo.Delete(ctx, saleID); err != nil {
		return uc.compensate(ctx, saleID, restored, err)
	}

	uc.log.Info().Int64("sale_id", saleID).Int("lines", len(s.Items)).Msg("venta revertida")
	return nil
}

// compensate vuelve a descontar lo devuelto y reporta la causa como error de persistencia.
func (uc *UndoSaleUseCase) compensate(ctx context.Context, saleID int64, restored []entity.SaleLineItem, cause error) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for i := len(restored) - 1; i >= 0; i-- {
		it := restored[i]
		if _, err := uc.productRepo.ReduceStock(ctx, it.ProductID, it.Quantity); err != nil {
			errs = append(errs, err)
		}
	}
	se := domain.NewPersistenceError(cause)
	if len(errs) > 0 {
		uc.log.Error().Int64("sale_id", saleID).Err(errors.Join(errs...)).Msg("compensación de reversión incompleta")
		se.Err = errors.Join(se.Err, errors.Join(errs...))
	}
	return se
}
