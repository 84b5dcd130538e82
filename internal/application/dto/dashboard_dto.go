package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido del mes.
type TopProductDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"` // antes de descuentos
}

// DashboardSummaryDTO resumen para GET /api/dashboard.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	TodayCount    int             `json:"today_count"`
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyCount  int             `json:"monthly_count"`
	TopProducts   []TopProductDTO `json:"top_products"`
	LowStockCount int             `json:"low_stock_count"`
	DateLabel     string          `json:"date_label"` // "Marzo 2025"
}
