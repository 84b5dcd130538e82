package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/memory"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

var errStorage = errors.New("disco lleno")

// store agrupa los repositorios en memoria de un test.
type store struct {
	products *memory.ProductRepo
	users    *memory.UserRepo
	sales    *memory.SaleRepo
}

// newStore carga: 1 lápiz (10 u), 2 audífonos (4 u), 3 manzana (categoría no vendible),
// y los usuarios 1 ana (vendedor), 2 bodega (inventarista).
func newStore(t *testing.T) *store {
	t.Helper()
	ctx := context.Background()
	s := &store{
		products: memory.NewProductRepository(),
		users:    memory.NewUserRepository(),
		sales:    memory.NewSaleRepository(),
	}
	for _, p := range []*entity.Product{
		{Name: "lápiz", Price: decimal.NewFromInt(500), Quantity: 10, Category: "escolar", MinStock: 2},
		{Name: "audífonos", Price: decimal.RequireFromString("25000.50"), Quantity: 4, Category: "electronica", MinStock: 1},
		{Name: "manzana", Price: decimal.NewFromInt(800), Quantity: 50, Category: "alimentos"},
	} {
		require.NoError(t, s.products.Create(ctx, p))
	}
	for _, u := range []*entity.User{
		{Name: "ana", Role: entity.RoleVendedor},
		{Name: "bodega", Role: entity.RoleInventarista},
	} {
		require.NoError(t, s.users.Create(ctx, u))
	}
	return s
}

func (s *store) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := s.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func newRegistrar(products repository.ProductRepository, users repository.UserRepository, salesRepo repository.SaleRepository, opts ...sales.RegisterOption) *sales.RegisterSaleUseCase {
	return sales.NewRegisterSaleUseCase(
		sale.NewValidator(products, users),
		products,
		salesRepo,
		inventory.NewStockLocker(),
		metrics.NewNoOpBusinessMetrics(),
		logger.Nop(),
		opts...,
	)
}

func actor(id int64) *int64 { return &id }

func input(items ...sale.LineInput) sales.RegisterSaleInput {
	return sales.RegisterSaleInput{Date: "10/03/2025", Items: items, ActorID: actor(1)}
}

func line(productID int64, qty int) sale.LineInput {
	return sale.LineInput{ProductID: productID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Decoradores con fallos inyectados
// ──────────────────────────────────────────────────────────────────────────────

// flakyProducts falla el ReduceStock número failReduceAt (1-based) y, si failIncrease,
// todos los IncreaseStock.
type flakyProducts struct {
	repository.ProductRepository
	mu           sync.Mutex
	reduceCalls  int
	failReduceAt int
	failIncrease bool
	increases    int
}

func (f *flakyProducts) ReduceStock(ctx context.Context, id int64, qty int) (int, error) {
	f.mu.Lock()
	f.reduceCalls++
	n := f.reduceCalls
	f.mu.Unlock()
	if n == f.failReduceAt {
		return 0, errStorage
	}
	return f.ProductRepository.ReduceStock(ctx, id, qty)
}

func (f *flakyProducts) IncreaseStock(ctx context.Context, id int64, qty int) (int, error) {
	f.mu.Lock()
	f.increases++
	f.mu.Unlock()
	if f.failIncrease {
		return 0, errStorage
	}
	return f.ProductRepository.IncreaseStock(ctx, id, qty)
}

// failingSales falla Create y/o Delete.
type failingSales struct {
	repository.SaleRepository
	failCreate bool
	failDelete bool
}

func (f *failingSales) Create(ctx context.Context, s *entity.Sale) error {
	if f.failCreate {
		return errStorage
	}
	return f.SaleRepository.Create(ctx, s)
}

func (f *failingSales) Delete(ctx context.Context, id int64) error {
	if f.failDelete {
		return errStorage
	}
	return f.SaleRepository.Delete(ctx, id)
}

// failingList falla List (historial).
type failingList struct {
	repository.SaleRepository
}

func (failingList) List(context.Context) ([]*entity.Sale, error) {
	return nil, errStorage
}

// cancelOnReduce cancela el contexto del llamador tras el primer ReduceStock exitoso.
type cancelOnReduce struct {
	repository.ProductRepository
	cancel context.CancelFunc
}

func (c *cancelOnReduce) ReduceStock(ctx context.Context, id int64, qty int) (int, error) {
	n, err := c.ProductRepository.ReduceStock(ctx, id, qty)
	c.cancel()
	return n, err
}

// stubPDF y stubXML registran el reporte recibido.
type stubPDF struct{ got sales.SalesReport }

func (s *stubPDF) GenerateSalesReport(_ context.Context, r sales.SalesReport) ([]byte, error) {
	s.got = r
	return []byte("%PDF"), nil
}

type stubXML struct{ err error }

func (s *stubXML) ExportSales(context.Context, sales.SalesReport) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("<ventas/>"), nil
}
