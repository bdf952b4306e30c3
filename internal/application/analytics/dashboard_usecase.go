// Package analytics contiene el resumen del dashboard: KPIs del mes en curso
// de facturación, cuadrilla, inventario y presupuesto.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/domain/payroll"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

const revenueMonths = 6 // puntos de la gráfica de ingresos

// DashboardUseCase genera el resumen del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) más los registros
// de horas para la nómina del mes.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	employees     repository.EmployeeRepository
	entries       repository.TimeEntryRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	employees repository.EmployeeRepository,
	entries repository.TimeEntryRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, employees: employees, entries: entries, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Seis consultas en paralelo; la primera que falle cancela el resto:
//  1. RevenueBetween(mes)  → MonthRevenue
//  2. Outstanding          → cartera y vencidas
//  3. Inventory            → valor y bajo stock
//  4. BudgetTotals(mes)    → presupuesto y utilización
//  5. RevenueByMonth(6)    → gráfica
//  6. Horas del mes        → nómina con horas extra
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()

	// ── Rango del mes en curso: [día 1, día 1 del mes siguiente) ────────────────
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	period := monthStart.Format("2006-01")

	var (
		revenue        decimal.Decimal
		outstanding    *repository.OutstandingResult
		inventory      *repository.InventoryResult
		planned, spent decimal.Decimal
		byMonth        []repository.MonthlyRevenue
		payrollCost    decimal.Decimal
		payrollHours   decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if revenue, err = uc.analyticsRepo.RevenueBetween(gctx, companyID, monthStart, monthEnd.Add(-time.Nanosecond)); err != nil {
			return fmt.Errorf("dashboard: ingresos del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if outstanding, err = uc.analyticsRepo.Outstanding(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: cartera: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if inventory, err = uc.analyticsRepo.Inventory(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: inventario: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if planned, spent, err = uc.analyticsRepo.BudgetTotals(gctx, companyID, period); err != nil {
			return fmt.Errorf("dashboard: presupuesto: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if byMonth, err = uc.analyticsRepo.RevenueByMonth(gctx, companyID, revenueMonths); err != nil {
			return fmt.Errorf("dashboard: ingresos por mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payrollCost, payrollHours, err = uc.monthPayroll(gctx, companyID, monthStart, monthEnd)
		if err != nil {
			return fmt.Errorf("dashboard: nómina: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &dto.DashboardSummaryDTO{
		MonthRevenue:      revenue.Round(2),
		OutstandingTotal:  decimal.Zero,
		RevenueByMonth:    make([]dto.MonthRevenue, 0, len(byMonth)),
		MonthPayrollCost:  payrollCost.Round(2),
		MonthHours:        payrollHours,
		InventoryValue:    decimal.Zero,
		BudgetPlanned:     planned.Round(2),
		BudgetSpent:       spent.Round(2),
		BudgetUtilization: payroll.Progress(spent, planned),
		Period:            period,
		DateLabel:         monthLabel(now),
	}
	if outstanding != nil {
		res.OutstandingTotal = outstanding.Total.Round(2)
		res.OpenInvoices = outstanding.OpenCount
		res.OverdueInvoices = outstanding.OverdueCount
	}
	if inventory != nil {
		res.InventoryValue = inventory.Value.Round(2)
		res.LowStockCount = inventory.LowStockCount
	}
	for _, m := range byMonth {
		res.RevenueByMonth = append(res.RevenueByMonth, dto.MonthRevenue{Month: m.Month, Revenue: m.Revenue.Round(2)})
	}
	return res, nil
}

// monthPayroll costo bruto y horas del mes con la misma regla de horas extra que la nómina.
func (uc *DashboardUseCase) monthPayroll(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	employees, err := uc.employees.ListByCompany(ctx, companyID, "")
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	list, err := uc.entries.ListByPeriod(ctx, companyID, from, to, "")
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	rates := make(map[string]decimal.Decimal, len(employees))
	for _, e := range employees {
		rates[e.ID] = e.HourlyRate
	}
	entries := make([]payroll.Entry, 0, len(list))
	for _, t := range list {
		entries = append(entries, payroll.Entry{EmployeeID: t.EmployeeID, WorkDate: t.WorkDate, Hours: t.Hours})
	}
	s := payroll.Compute(entries, rates)
	return s.TotalGross, s.TotalHours, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
