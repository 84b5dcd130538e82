package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// RegisterMovementUseCase aplica movimientos manuales de stock (IN, OUT, ADJUSTMENT)
// bajo el mismo StockLocker que usa el registro de ventas.
type RegisterMovementUseCase struct {
	productRepo repository.ProductRepository
	locker      *StockLocker
	metrics     metrics.BusinessMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	productRepo repository.ProductRepository,
	locker *StockLocker,
	bm metrics.BusinessMetrics,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		productRepo: productRepo,
		locker:      locker,
		metrics:     bm,
		log:         log,
		now:         time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento de stock.
// IN y OUT son deltas (Quantity > 0); ADJUSTMENT fija Quantity como valor absoluto.
type MovementInputDTO struct {
	ProductID int64
	UserID    int64
	Type      string
	Quantity  int
	Reference string
}

// RegisterMovement valida la entrada, bloquea el producto y aplica el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (mov *entity.StockMovement, err error) {
	start := uc.now()
	defer func() { metrics.Observe(ctx, uc.metrics, "inventory", "movement_"+input.Type, start, err) }()

	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if input.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
	case entity.MovementTypeADJUSTMENT:
		if err := entity.ValidateStockLevel(input.Quantity); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, input.Type)
	}

	unlock := uc.locker.Lock(input.ProductID)
	defer unlock()

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	before, after := product.Quantity, product.Quantity
	moved := input.Quantity
	switch input.Type {
	case entity.MovementTypeIN:
		after, err = uc.productRepo.IncreaseStock(ctx, input.ProductID, input.Quantity)
	case entity.MovementTypeOUT:
		after, err = uc.productRepo.ReduceStock(ctx, input.ProductID, input.Quantity)
	case entity.MovementTypeADJUSTMENT:
		err = uc.productRepo.SetStock(ctx, input.ProductID, input.Quantity)
		after = input.Quantity
		moved = abs(after - before)
	}
	if err != nil {
		return nil, err
	}

	mov = &entity.StockMovement{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  moved,
		Before:    before,
		After:     after,
		Reference: input.Reference,
		CreatedAt: uc.now(),
		CreatedBy: input.UserID,
	}
	uc.log.Info().
		Int64("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("before", mov.Before).
		Int("after", mov.After).
		Int64("user_id", mov.CreatedBy).
		Msg("movimiento de stock registrado")
	return mov, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
