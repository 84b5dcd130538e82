// Package analytics contiene el resumen de ventas del día y del mes para el dashboard.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase resume las ventas del día y del mes en curso.
// Lee el historial completo; no hay consultas agregadas en los repositorios.
type DashboardUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{saleRepo: saleRepo, productRepo: productRepo, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO:
//   - TodaySales / TodayCount: ventas con fecha de hoy
//   - MonthlySales / MonthlyCount: ventas del mes calendario en curso
//   - TopProducts: los más vendidos del mes por unidades
//   - LowStockCount: productos en o bajo su stock mínimo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	list, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", err)
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", err)
	}

	out := &dto.DashboardSummaryDTO{
		TodaySales:   decimal.Zero,
		MonthlySales: decimal.Zero,
		TopProducts:  []dto.TopProductDTO{},
		DateLabel:    monthLabel(now),
	}

	units := make(map[int64]int)
	revenue := make(map[int64]decimal.Decimal)
	for _, s := range list {
		if s.Date.Year() != now.Year() || s.Date.Month() != now.Month() {
			continue
		}
		out.MonthlyCount++
		out.MonthlySales = out.MonthlySales.Add(s.Total)
		if s.Date.Day() == now.Day() {
			out.TodayCount++
			out.TodaySales = out.TodaySales.Add(s.Total)
		}
		for _, it := range s.Items {
			units[it.ProductID] += it.Quantity
			revenue[it.ProductID] = revenue[it.ProductID].Add(it.Subtotal())
		}
	}
	out.TodaySales = out.TodaySales.Round(2)
	out.MonthlySales = out.MonthlySales.Round(2)

	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
		if p.IsLowStock() {
			out.LowStockCount++
		}
	}

	for id, n := range units {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:   id,
			ProductName: productName(names, id),
			Units:       n,
			Revenue:     revenue[id].Round(2),
		})
	}
	slices.SortFunc(out.TopProducts, func(a, b dto.TopProductDTO) int {
		if c := cmp.Compare(b.Units, a.Units); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if len(out.TopProducts) > dashboardTopProducts {
		out.TopProducts = out.TopProducts[:dashboardTopProducts]
	}
	return out, nil
}

func productName(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("ID %d", id)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

