package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=analytics_repository.go -destination=mocks/analytics_repository_mock.go -package=mocks

// MonthlyRevenue ingresos (recibos) agregados por mes, para la gráfica del dashboard.
type MonthlyRevenue struct {
	Month   string // YYYY-MM
	Revenue decimal.Decimal
}

// OutstandingResult cartera pendiente de facturas enviadas o vencidas.
type OutstandingResult struct {
	Total        decimal.Decimal // saldo (grand_total - recibido)
	OpenCount    int
	OverdueCount int
}

// InventoryResult valor y alertas del inventario de materiales.
type InventoryResult struct {
	Value         decimal.Decimal // Σ quantity × unit_cost
	LowStockCount int
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// RevenueBetween suma de recibos con received_at en [from, to].
	RevenueBetween(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	Outstanding(ctx context.Context, companyID string) (*OutstandingResult, error)
	Inventory(ctx context.Context, companyID string) (*InventoryResult, error)
	// BudgetTotals planeado y gastado del período YYYY-MM.
	BudgetTotals(ctx context.Context, companyID, period string) (planned, spent decimal.Decimal, err error)
	RevenueByMonth(ctx context.Context, companyID string, months int) ([]MonthlyRevenue, error)
}
