package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// seedSales registra dos ventas: (lápiz x2) y (lápiz x1, audífonos x1).
func seedSales(t *testing.T, s *store) {
	t.Helper()
	uc := newRegistrar(s.products, s.users, s.sales)
	_, err := uc.RegisterSale(context.Background(), input(line(1, 2)))
	require.NoError(t, err)
	_, err = uc.RegisterSale(context.Background(), input(line(1, 1), line(2, 1)))
	require.NoError(t, err)
}

func newHistory(s *store) *sales.HistoryUseCase {
	return sales.NewHistoryUseCase(s.sales, s.products, s.users, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestListSales_FormatoDelHistorial(t *testing.T) {
	s := newStore(t)
	seedSales(t, s)

	list, err := newHistory(s).ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "10/03/2025", list[0].Date)
	assert.Equal(t, []string{"lápiz (x2)"}, list[0].Items)
	assert.Equal(t, "ana", list[0].UserName)
	assert.True(t, decimal.NewFromInt(1000).Equal(list[0].Total))

	assert.Equal(t, []string{"lápiz (x1)", "audífonos (x1)"}, list[1].Items)
}

func TestListSales_EtiquetasDeRespaldo(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	require.NoError(t, s.products.Delete(ctx, 2))
	require.NoError(t, s.users.Delete(ctx, 1))

	list, err := newHistory(s).ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"lápiz (x1)", "ID 2 (x1)"}, list[1].Items)
	assert.Equal(t, "ID 1", list[1].UserName)
}

func TestSales_SecuenciaReiniciable(t *testing.T) {
	s := newStore(t)
	seedSales(t, s)
	seq := newHistory(s).Sales(context.Background())

	collect := func() []int64 {
		var ids []int64
		for summary, err := range seq {
			require.NoError(t, err)
			ids = append(ids, summary.ID)
		}
		return ids
	}
	first := collect()
	assert.Equal(t, first, collect(), "dos recorridos sin escrituras dan lo mismo")

	_, err := newRegistrar(s.products, s.users, s.sales).RegisterSale(context.Background(), input(line(1, 1)))
	require.NoError(t, err)
	assert.Len(t, collect(), 3, "cada recorrido relee el almacenamiento")

	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSales_ErrorDeLectura(t *testing.T) {
	s := newStore(t)
	h := sales.NewHistoryUseCase(failingList{SaleRepository: s.sales}, s.products, s.users, logger.Nop())

	_, err := h.ListSales(context.Background())
	assert.ErrorIs(t, err, errStorage)
}

func TestGetSale(t *testing.T) {
	s := newStore(t)
	seedSales(t, s)
	h := newHistory(s)

	got, err := h.GetSale(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	_, err = h.GetSale(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAllSales_NoTocaStock(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	h := newHistory(s)

	require.NoError(t, h.DeleteAllSales(ctx))
	list, err := h.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 7, s.stock(t, 1))
	assert.Equal(t, 3, s.stock(t, 2))
}

func TestDeleteSale(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	h := newHistory(s)

	require.NoError(t, h.DeleteSale(ctx, 1))
	assert.ErrorIs(t, h.DeleteSale(ctx, 1), domain.ErrNotFound)
	list, _ := h.ListSales(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, 7, s.stock(t, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversión de ventas
// ──────────────────────────────────────────────────────────────────────────────

func newUndo(s *store, salesRepo *failingSales) *sales.UndoSaleUseCase {
	return sales.NewUndoSaleUseCase(salesRepo, s.products, inventory.NewStockLocker(), metrics.NewNoOpBusinessMetrics(), logger.Nop())
}

func TestUndoSale_DevuelveStockYBorraVenta(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	uc := newUndo(s, &failingSales{SaleRepository: s.sales})

	require.NoError(t, uc.UndoSale(ctx, 2))
	assert.Equal(t, 8, s.stock(t, 1))
	assert.Equal(t, 4, s.stock(t, 2))
	got, _ := s.sales.GetByID(ctx, 2)
	assert.Nil(t, got)

	assert.ErrorIs(t, uc.UndoSale(ctx, 2), domain.ErrNotFound)
}

func TestUndoSale_FalloAlBorrarCompensa(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	uc := newUndo(s, &failingSales{SaleRepository: s.sales, failDelete: true})

	err := uc.UndoSale(ctx, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 7, s.stock(t, 1))
	assert.Equal(t, 3, s.stock(t, 2))
	got, _ := s.sales.GetByID(ctx, 2)
	assert.NotNil(t, got, "la venta sigue en el historial")
}

func TestUndoSale_StockMaximoCompensa(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedSales(t, s)
	require.NoError(t, s.products.SetStock(ctx, 2, 1000))
	uc := newUndo(s, &failingSales{SaleRepository: s.sales})

	err := uc.UndoSale(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
	assert.Equal(t, 7, s.stock(t, 1), "la línea ya devuelta se vuelve a descontar")
	assert.Equal(t, 1000, s.stock(t, 2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_TotalGeneral(t *testing.T) {
	s := newStore(t)
	seedSales(t, s)
	pdf := &stubPDF{}
	uc := sales.NewReportUseCase(newHistory(s), pdf, &stubXML{}, "Tienda Central")

	out, err := uc.GeneratePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	assert.Equal(t, "Tienda Central", pdf.got.StoreName)
	assert.Len(t, pdf.got.Sales, 2)
	assert.True(t, decimal.RequireFromString("26500.50").Equal(pdf.got.GrandTotal), "total: %s", pdf.got.GrandTotal)
	assert.WithinDuration(t, time.Now(), pdf.got.GeneratedAt, time.Minute)
}

func TestReport_ErrorDelExportador(t *testing.T) {
	s := newStore(t)
	uc := sales.NewReportUseCase(newHistory(s), &stubPDF{}, &stubXML{err: errStorage}, "Tienda")

	_, err := uc.GenerateXML(context.Background())
	assert.ErrorIs(t, err, errStorage)
}
