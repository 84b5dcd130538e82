package sales_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
)

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_DescuentaStockYPersiste(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	id, err := uc.RegisterSale(ctx, input(line(1, 3), line(2, 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	assert.Equal(t, 7, s.stock(t, 1))
	assert.Equal(t, 3, s.stock(t, 2))

	stored, err := s.sales.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "10/03/2025", stored.FormattedDate())
	assert.Equal(t, int64(1), stored.UserID)
	assert.True(t, decimal.RequireFromString("26500.50").Equal(stored.Total), "total: %s", stored.Total)
	assert.True(t, decimal.NewFromInt(500).Equal(stored.Items[0].UnitPrice))
}

func TestRegisterSale_LineasDuplicadasSeFusionan(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	created, err := uc.Register(ctx, input(line(1, 3), line(1, 4)))
	require.NoError(t, err)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 7, created.Items[0].Quantity)
	assert.Equal(t, 3, s.stock(t, 1))

	_, err = uc.RegisterSale(ctx, input(line(1, 2), line(1, 2)))
	var se *domain.SaleError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, se.Available)
	assert.Equal(t, 4, se.Requested, "la suma de las líneas duplicadas es lo solicitado")
}

func TestRegisterSale_AplicaDescuento(t *testing.T) {
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	in := input(line(1, 2))
	in.Discount = decimal.NewFromInt(10)
	created, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(created.Total), "total: %s", created.Total)
	assert.True(t, decimal.NewFromInt(10).Equal(created.Discount))
}

func TestRegisterSale_IDsEstrictamenteCrecientes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	first, err := uc.RegisterSale(ctx, input(line(1, 1)))
	require.NoError(t, err)
	second, err := uc.RegisterSale(ctx, input(line(1, 1)))
	require.NoError(t, err)
	require.NoError(t, s.sales.DeleteAll(ctx))
	third, err := uc.RegisterSale(ctx, input(line(1, 1)))
	require.NoError(t, err)

	assert.Less(t, first, second)
	assert.Less(t, second, third, "el borrado del historial no reinicia la secuencia")
}

func TestRegisterSale_TransicionesDeEstado(t *testing.T) {
	var got []sales.State
	hook := sales.WithTransitionHook(func(_ string, _, to sales.State) { got = append(got, to) })

	s := newStore(t)
	_, err := newRegistrar(s.products, s.users, s.sales, hook).RegisterSale(context.Background(), input(line(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, []sales.State{
		sales.StateValidated, sales.StateStockChecked, sales.StateReserved, sales.StatePersisted, sales.StateCommitted,
	}, got)

	got = nil
	_, err = newRegistrar(s.products, s.users, &failingSales{SaleRepository: s.sales, failCreate: true}, hook).
		RegisterSale(context.Background(), input(line(1, 1)))
	require.Error(t, err)
	assert.Equal(t, []sales.State{
		sales.StateValidated, sales.StateStockChecked, sales.StateReserved, sales.StateRolledBack, sales.StateFailed,
	}, got)

	got = nil
	_, err = newRegistrar(s.products, s.users, s.sales, hook).RegisterSale(context.Background(), input())
	require.Error(t, err)
	assert.Equal(t, []sales.State{sales.StateRolledBack, sales.StateFailed}, got, "la validación fallida también pasa por RolledBack")

	got = nil
	_, err = newRegistrar(s.products, s.users, s.sales, hook).RegisterSale(context.Background(), input(line(2, 50)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, []sales.State{sales.StateValidated, sales.StateRolledBack, sales.StateFailed}, got)
}

func TestRegisterSale_CantidadesDuplicadasEnormesSonStockInsuficiente(t *testing.T) {
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	_, err := uc.RegisterSale(context.Background(), input(line(1, math.MaxInt), line(1, 2)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 10, se.Available)
	assert.Equal(t, math.MaxInt, se.Requested)
	assert.Equal(t, 10, s.stock(t, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de entrada y de stock: sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_StockInsuficiente(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	_, err := uc.RegisterSale(ctx, input(line(1, 2), line(2, 5)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int64(2), se.ProductID)
	assert.Equal(t, "audífonos", se.ProductName)
	assert.Equal(t, 4, se.Available)
	assert.Equal(t, 5, se.Requested)

	assert.Equal(t, 10, s.stock(t, 1))
	assert.Equal(t, 4, s.stock(t, 2))
	list, _ := s.sales.List(ctx)
	assert.Empty(t, list)
}

func TestRegisterSale_ErroresDeValidacionSinEfectos(t *testing.T) {
	tests := []struct {
		name string
		in   sales.RegisterSaleInput
		want error
	}{
		{"sin líneas", input(), domain.ErrEmptySale},
		{"fecha futura", sales.RegisterSaleInput{Date: "01/01/2999", Items: []sale.LineInput{line(1, 1)}, ActorID: actor(1)}, domain.ErrInvalidDate},
		{"producto no registrado", input(line(1, 1), line(99, 1)), domain.ErrUnregisteredProduct},
		{"cantidad cero", input(line(1, 0)), domain.ErrInvalidQuantity},
		{"categoría no vendible", input(line(3, 1)), domain.ErrInvalidCategory},
		{"sin empleado", sales.RegisterSaleInput{Date: "10/03/2025", Items: []sale.LineInput{line(1, 1)}}, domain.ErrNoAssignedActor},
		{"rol sin permiso de venta", sales.RegisterSaleInput{Date: "10/03/2025", Items: []sale.LineInput{line(1, 1)}, ActorID: actor(2)}, domain.ErrNoAssignedActor},
		{"descuento fuera de rango", sales.RegisterSaleInput{Date: "10/03/2025", Items: []sale.LineInput{line(1, 1)}, ActorID: actor(1), Discount: decimal.NewFromInt(101)}, domain.ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			_, err := newRegistrar(s.products, s.users, s.sales).RegisterSale(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 10, s.stock(t, 1))
			list, _ := s.sales.List(context.Background())
			assert.Empty(t, list)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: fallos después de descontar stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_FalloAlDescontarRevierteLineasAnteriores(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	products := &flakyProducts{ProductRepository: s.products, failReduceAt: 2}
	uc := newRegistrar(products, s.users, s.sales)

	_, err := uc.RegisterSale(ctx, input(line(1, 3), line(2, 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errStorage)

	assert.Equal(t, 10, s.stock(t, 1), "la primera línea se devuelve")
	assert.Equal(t, 4, s.stock(t, 2))
	list, _ := s.sales.List(ctx)
	assert.Empty(t, list)
}

func TestRegisterSale_FalloAlPersistirRestauraStock(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, &failingSales{SaleRepository: s.sales, failCreate: true})

	_, err := uc.RegisterSale(ctx, input(line(1, 3), line(2, 2)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errStorage)

	assert.Equal(t, 10, s.stock(t, 1))
	assert.Equal(t, 4, s.stock(t, 2))
}

func TestRegisterSale_RollbackFallidoReportaAmbasCausas(t *testing.T) {
	s := newStore(t)
	products := &flakyProducts{ProductRepository: s.products, failReduceAt: 2, failIncrease: true}
	uc := newRegistrar(products, s.users, s.sales)

	_, err := uc.RegisterSale(context.Background(), input(line(1, 3), line(2, 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, 3, products.increases, "tres intentos por línea reservada")
	assert.Contains(t, err.Error(), "no pudo restaurarse")
}

func TestRegisterSale_CancelacionDuranteReservaRevierte(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	products := &cancelOnReduce{ProductRepository: s.products, cancel: cancel}
	uc := newRegistrar(products, s.users, s.sales)

	_, err := uc.RegisterSale(ctx, input(line(1, 3), line(2, 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 10, s.stock(t, 1))
	assert.Equal(t, 4, s.stock(t, 2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: sin sobreventa
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_ConcurrenteNoSobrevende(t *testing.T) {
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	const buyers = 20
	var ok, short atomic.Int32
	var wg sync.WaitGroup
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterSale(context.Background(), input(line(1, 1), line(2, 1)))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				short.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(4), ok.Load(), "solo hay 4 audífonos")
	assert.Equal(t, int32(buyers-4), short.Load())
	assert.Equal(t, 0, s.stock(t, 2))
	assert.Equal(t, 6, s.stock(t, 1))

	list, err := s.sales.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateStockForSale
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateStockForSale(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	uc := newRegistrar(s.products, s.users, s.sales)

	tests := []struct {
		name string
		id   int64
		qty  int
		want bool
	}{
		{"alcanza", 2, 4, true},
		{"no alcanza", 2, 5, false},
		{"cantidad cero", 1, 0, false},
		{"producto inexistente", 42, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.ValidateStockForSale(ctx, tt.id, tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 4, s.stock(t, 2), "la consulta no reserva stock")
}
