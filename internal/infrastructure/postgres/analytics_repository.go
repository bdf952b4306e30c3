package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// RevenueBetween suma los recibos del período. Los ingresos se cuentan por caja
// (fecha de recibo), no por fecha de emisión de la factura.
func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM receipts
	WHERE company_id = $1
	  AND received_at BETWEEN $2 AND $3`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, companyID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.RevenueBetween: %w", err)
	}
	return total, nil
}

// Outstanding saldo pendiente de facturas enviadas o vencidas.
// El saldo de cada factura es grand_total menos lo recibido, nunca negativo.
func (r *AnalyticsRepo) Outstanding(ctx context.Context, companyID string) (*repository.OutstandingResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(GREATEST(i.grand_total - COALESCE(p.paid, 0), 0)), 0) AS outstanding,
	    COUNT(*)                                                           AS open_count,
	    COUNT(*) FILTER (WHERE i.status = 'overdue')                       AS overdue_count
	FROM invoices i
	LEFT JOIN (
	    SELECT invoice_id, SUM(amount) AS paid
	    FROM receipts
	    WHERE invoice_id IS NOT NULL
	    GROUP BY invoice_id
	) p ON p.invoice_id = i.id
	WHERE i.company_id = $1
	  AND i.status IN ('sent', 'overdue')`

	var res repository.OutstandingResult
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&res.Total, &res.OpenCount, &res.OverdueCount); err != nil {
		return nil, fmt.Errorf("analytics.Outstanding: %w", err)
	}
	return &res, nil
}

// Inventory valor total del inventario y artículos en o bajo el punto de reorden.
func (r *AnalyticsRepo) Inventory(ctx context.Context, companyID string) (*repository.InventoryResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity * unit_cost), 0)                   AS value,
	    COUNT(*) FILTER (WHERE quantity <= reorder_level)        AS low_stock
	FROM materials
	WHERE company_id = $1`

	var res repository.InventoryResult
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&res.Value, &res.LowStockCount); err != nil {
		return nil, fmt.Errorf("analytics.Inventory: %w", err)
	}
	return &res, nil
}

// BudgetTotals planeado y gastado del período.
func (r *AnalyticsRepo) BudgetTotals(ctx context.Context, companyID, period string) (planned, spent decimal.Decimal, err error) {
	const query = `
	SELECT COALESCE(SUM(planned), 0), COALESCE(SUM(spent), 0)
	FROM budget_categories
	WHERE company_id = $1 AND period = $2`

	if err = r.pool.QueryRow(ctx, query, companyID, period).Scan(&planned, &spent); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.BudgetTotals: %w", err)
	}
	return planned, spent, nil
}

// RevenueByMonth ingresos de los últimos `months` meses, incluido el actual.
// Los meses sin recibos aparecen con 0 gracias a generate_series.
func (r *AnalyticsRepo) RevenueByMonth(ctx context.Context, companyID string, months int) ([]repository.MonthlyRevenue, error) {
	if months <= 0 {
		months = 6
	}
	const query = `
	WITH m AS (
	    SELECT generate_series(
	        date_trunc('month', NOW()) - ($2::int - 1) * INTERVAL '1 month',
	        date_trunc('month', NOW()),
	        INTERVAL '1 month'
	    ) AS month
	)
	SELECT to_char(m.month, 'YYYY-MM') AS month,
	       COALESCE(SUM(r.amount), 0)  AS revenue
	FROM m
	LEFT JOIN receipts r
	       ON r.company_id = $1
	      AND date_trunc('month', r.received_at) = m.month
	GROUP BY m.month
	ORDER BY m.month`

	rows, err := r.pool.Query(ctx, query, companyID, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueByMonth: %w", err)
	}
	defer rows.Close()

	results := make([]repository.MonthlyRevenue, 0, months)
	for rows.Next() {
		var row repository.MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.RevenueByMonth scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
