// Package sales orquesta el registro de ventas, su historial y la reversión de ventas.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// State es el estado de una llamada a RegisterSale.
type State string

// Estados de un registro. Committed y Failed son terminales.
const (
	StateReceived     State = "received"
	StateValidated    State = "validated"
	StateStockChecked State = "stock_checked"
	StateReserved     State = "reserved"
	StatePersisted    State = "persisted"
	StateCommitted    State = "committed"
	StateRolledBack   State = "rolled_back"
	StateFailed       State = "failed"
)

// rollbackAttempts reintentos por línea al devolver stock.
const rollbackAttempts = 3

// RegisterSaleInput entrada del registro de una venta.
type RegisterSaleInput struct {
	Date     string
	Items    []sale.LineInput
	ActorID  *int64
	Discount decimal.Decimal
}

// RegisterSaleUseCase registra ventas: valida, verifica stock, reserva (descuenta) y persiste.
// Si algo falla después de descontar stock, lo devuelve antes de retornar el error:
// quien llama ve éxito completo o un fallo sin efectos.
type RegisterSaleUseCase struct {
	validator    *sale.Validator
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	locker       *inventory.StockLocker
	metrics      metrics.BusinessMetrics
	log          *logger.Logger
	onTransition func(traceID string, from, to State)
}

// RegisterOption configura el caso de uso.
type RegisterOption func(*RegisterSaleUseCase)

// WithTransitionHook recibe cada cambio de estado de un registro (auditoría, tests).
func WithTransitionHook(fn func(traceID string, from, to State)) RegisterOption {
	return func(uc *RegisterSaleUseCase) { uc.onTransition = fn }
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(
	validator *sale.Validator,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	locker *inventory.StockLocker,
	bm metrics.BusinessMetrics,
	log *logger.Logger,
	opts ...RegisterOption,
) *RegisterSaleUseCase {
	uc := &RegisterSaleUseCase{
		validator:   validator,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		locker:      locker,
		metrics:     bm,
		log:         log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// registration lleva el estado de una llamada.
type registration struct {
	traceID string
	state   State
	log     zerolog.Logger
	hook    func(traceID string, from, to State)
}

func (r *registration) to(next State) {
	if r.hook != nil {
		r.hook(r.traceID, r.state, next)
	}
	r.log.Debug().Str("from", string(r.state)).Str("to", string(next)).Msg("registro de venta")
	r.state = next
}

// RegisterSale registra la venta y devuelve su ID. Los errores son *domain.SaleError.
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, in RegisterSaleInput) (int64, error) {
	s, err := uc.Register(ctx, in)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

// Register registra la venta y devuelve la entidad persistida (ID, líneas con precio, total).
func (uc *RegisterSaleUseCase) Register(ctx context.Context, in RegisterSaleInput) (result *entity.Sale, err error) {
	start := time.Now()
	run := &registration{traceID: uuid.NewString(), state: StateReceived, hook: uc.onTransition}
	run.log = uc.log.Zerolog().With().Str("trace_id", run.traceID).Logger()
	defer func() {
		metrics.Observe(ctx, uc.metrics, "sales", "register_sale", start, err)
		if err != nil {
			// Sin reserva previa el paso por RolledBack no deshace nada.
			if run.state != StateRolledBack {
				run.to(StateRolledBack)
			}
			run.to(StateFailed)
			run.log.Warn().Str("kind", kindName(err)).Err(err).Msg("venta rechazada")
		}
	}()

	// ── A. Validación estática ────────────────────────────────────────────────
	validated, err := uc.validator.Validate(ctx, sale.Candidate{
		Date:     in.Date,
		Items:    in.Items,
		ActorID:  in.ActorID,
		Discount: in.Discount,
	})
	if err != nil {
		return nil, err
	}
	run.to(StateValidated)

	unlock := uc.locker.Lock(validated.ProductIDs()...)
	defer unlock()

	// ── B. Stock suficiente (releído con el producto bloqueado) ───────────────
	if err := uc.checkStock(ctx, validated.Lines); err != nil {
		return nil, err
	}
	run.to(StateStockChecked)

	// ── C. Reserva: descontar cada línea; si una falla, devolver las anteriores ─
	reserved := make([]sale.Line, 0, len(validated.Lines))
	for _, l := range validated.Lines {
		if err := ctx.Err(); err != nil {
			return nil, uc.abort(ctx, run, reserved, domain.NewPersistenceError(err))
		}
		if _, err := uc.productRepo.ReduceStock(ctx, l.Product.ID, l.Quantity); err != nil {
			return nil, uc.abort(ctx, run, reserved, uc.reserveError(ctx, l, err))
		}
		reserved = append(reserved, l)
	}
	run.to(StateReserved)

	// ── D. Persistencia de cabecera y líneas ──────────────────────────────────
	s := validated.Sale()
	if err := ctx.Err(); err != nil {
		return nil, uc.abort(ctx, run, reserved, domain.NewPersistenceError(err))
	}
	if err := uc.saleRepo.Create(ctx, s); err != nil {
		return nil, uc.abort(ctx, run, reserved, domain.NewPersistenceError(err))
	}
	run.to(StatePersisted)

	// ── E. Éxito ──────────────────────────────────────────────────────────────
	run.to(StateCommitted)
	run.log.Info().
		Int64("sale_id", s.ID).
		Int64("user_id", s.UserID).
		Int("lines", len(s.Items)).
		Str("total", s.Total.StringFixed(2)).
		Msg("venta registrada")
	return s, nil
}

// ValidateStockForSale indica si hay stock para qty unidades del producto. No reserva nada.
func (uc *RegisterSaleUseCase) ValidateStockForSale(ctx context.Context, productID int64, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return p != nil && p.Quantity >= qty, nil
}

func (uc *RegisterSaleUseCase) checkStock(ctx context.Context, lines []sale.Line) error {
	for _, l := range lines {
		p, err := uc.productRepo.GetByID(ctx, l.Product.ID)
		if err != nil {
			return domain.NewPersistenceError(err)
		}
		if p == nil {
			se := domain.NewSaleError(domain.ErrUnregisteredProduct, "el producto con ID %d ya no está registrado en el inventario", l.Product.ID)
			se.ProductID = l.Product.ID
			return se
		}
		if p.Quantity < l.Quantity {
			return domain.NewInsufficientStockError(p.ID, p.Name, p.Quantity, l.Quantity)
		}
	}
	return nil
}

// reserveError traduce el fallo de ReduceStock: stock insuficiente conserva su tipo, el resto es persistencia.
func (uc *RegisterSaleUseCase) reserveError(ctx context.Context, l sale.Line, err error) error {
	if !errors.Is(err, domain.ErrInsufficientStock) {
		return domain.NewPersistenceError(err)
	}
	available := 0
	if p, rerr := uc.productRepo.GetByID(context.WithoutCancel(ctx), l.Product.ID); rerr == nil && p != nil {
		available = p.Quantity
	}
	return domain.NewInsufficientStockError(l.Product.ID, l.Product.Name, available, l.Quantity)
}

// abort devuelve el stock reservado (en orden inverso) y retorna cause.
// Si la devolución también falla, el error resultante es ErrPersistence con ambas causas.
func (uc *RegisterSaleUseCase) abort(ctx context.Context, run *registration, reserved []sale.Line, cause error) error {
	rollbackErr := uc.restore(context.WithoutCancel(ctx), run, reserved)
	run.to(StateRolledBack)
	if rollbackErr == nil {
		return cause
	}
	run.log.Error().Err(rollbackErr).Msg("rollback de stock incompleto")
	return &domain.SaleError{
		Kind:    domain.ErrPersistence,
		Message: "error de persistencia; el stock no pudo restaurarse por completo",
		Err:     errors.Join(cause, rollbackErr),
	}
}

func (uc *RegisterSaleUseCase) restore(ctx context.Context, run *registration, reserved []sale.Line) error {
	var errs []error
	for i := len(reserved) - 1; i >= 0; i-- {
		l := reserved[i]
		var err error
		for attempt := 1; attempt <= rollbackAttempts; attempt++ {
			if _, err = uc.productRepo.IncreaseStock(ctx, l.Product.ID, l.Quantity); err == nil {
				break
			}
			run.log.Warn().Err(err).Int64("product_id", l.Product.ID).Int("attempt", attempt).Msg("reintentando devolución de stock")
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("devolver %d unidades del producto %d: %w", l.Quantity, l.Product.ID, err))
		}
	}
	return errors.Join(errs...)
}

// kindName devuelve el mensaje del tipo de SaleError para logs.
func kindName(err error) string {
	if k := domain.SaleErrorKind(err); k != nil {
		return k.Error()
	}
	return "desconocido"
}
