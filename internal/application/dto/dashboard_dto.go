package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del mes en curso para todos los módulos.
type DashboardSummaryDTO struct {
	// Facturación
	MonthRevenue     decimal.Decimal `json:"month_revenue"`     // recibos del mes
	OutstandingTotal decimal.Decimal `json:"outstanding_total"` // saldo de facturas enviadas/vencidas
	OpenInvoices     int             `json:"open_invoices"`
	OverdueInvoices  int             `json:"overdue_invoices"`
	RevenueByMonth   []MonthRevenue  `json:"revenue_by_month"`

	// Cuadrilla
	MonthPayrollCost decimal.Decimal `json:"month_payroll_cost"`
	MonthHours       decimal.Decimal `json:"month_hours"`

	// MatTrack
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`

	// Presupuesto del período
	BudgetPlanned     decimal.Decimal `json:"budget_planned"`
	BudgetSpent       decimal.Decimal `json:"budget_spent"`
	BudgetUtilization decimal.Decimal `json:"budget_utilization"` // % 0-100

	// Metadatos del período
	Period    string `json:"period"`     // YYYY-MM
	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// MonthRevenue punto de la gráfica de ingresos.
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
