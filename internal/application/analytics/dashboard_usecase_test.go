package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/analytics"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc        *analytics.DashboardUseCase
	repo      *mocks.MockAnalyticsRepository
	employees *mocks.MockEmployeeRepository
	entries   *mocks.MockTimeEntryRepository
}

func newDashboard(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		repo:      mocks.NewMockAnalyticsRepository(ctrl),
		employees: mocks.NewMockEmployeeRepository(ctrl),
		entries:   mocks.NewMockTimeEntryRepository(ctrl),
	}
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	f.uc = analytics.NewDashboardUseCase(f.repo, f.employees, f.entries).WithClock(func() time.Time { return now })
	return f
}

func TestDashboard_ResumenDelMes(t *testing.T) {
	f := newDashboard(t)
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	f.repo.EXPECT().RevenueBetween(gomock.Any(), "co-1", from, to.Add(-time.Nanosecond)).Return(d("1234.567"), nil)
	f.repo.EXPECT().Outstanding(gomock.Any(), "co-1").
		Return(&repository.OutstandingResult{Total: d("800"), OpenCount: 3, OverdueCount: 1}, nil)
	f.repo.EXPECT().Inventory(gomock.Any(), "co-1").
		Return(&repository.InventoryResult{Value: d("450.5"), LowStockCount: 2}, nil)
	f.repo.EXPECT().BudgetTotals(gomock.Any(), "co-1", "2026-10").Return(d("1000"), d("250"), nil)
	f.repo.EXPECT().RevenueByMonth(gomock.Any(), "co-1", 6).Return([]repository.MonthlyRevenue{
		{Month: "2026-09", Revenue: d("900")},
		{Month: "2026-10", Revenue: d("1234.567")},
	}, nil)
	f.employees.EXPECT().ListByCompany(gomock.Any(), "co-1", "").
		Return([]*entity.Employee{{ID: "e1", HourlyRate: d("20")}}, nil)
	f.entries.EXPECT().ListByPeriod(gomock.Any(), "co-1", from, to, "").Return([]*entity.TimeEntry{
		{EmployeeID: "e1", WorkDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), Hours: d("8")},
		{EmployeeID: "e1", WorkDate: time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC), Hours: d("2")},
	}, nil)

	res, err := f.uc.GetSummary(context.Background(), "co-1")
	require.NoError(t, err)

	assert.Equal(t, "1234.57", res.MonthRevenue.StringFixed(2))
	assert.True(t, d("800").Equal(res.OutstandingTotal))
	assert.Equal(t, 3, res.OpenInvoices)
	assert.Equal(t, 1, res.OverdueInvoices)
	assert.True(t, d("450.5").Equal(res.InventoryValue))
	assert.Equal(t, 2, res.LowStockCount)
	assert.True(t, d("25").Equal(res.BudgetUtilization))
	assert.True(t, d("200").Equal(res.MonthPayrollCost))
	assert.True(t, d("10").Equal(res.MonthHours))
	require.Len(t, res.RevenueByMonth, 2)
	assert.Equal(t, "2026-10", res.Period)
	assert.Equal(t, "Octubre 2026", res.DateLabel)
}

func TestDashboard_ErrorDeUnaConsultaAbortaElResumen(t *testing.T) {
	f := newDashboard(t)
	boom := errors.New("conexión perdida")

	f.repo.EXPECT().RevenueBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil).AnyTimes()
	f.repo.EXPECT().Outstanding(gomock.Any(), gomock.Any()).Return(nil, boom)
	f.repo.EXPECT().Inventory(gomock.Any(), gomock.Any()).Return(&repository.InventoryResult{}, nil).AnyTimes()
	f.repo.EXPECT().BudgetTotals(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, decimal.Zero, nil).AnyTimes()
	f.repo.EXPECT().RevenueByMonth(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.employees.EXPECT().ListByCompany(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.entries.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.uc.GetSummary(context.Background(), "co-1")
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_SinDatosDevuelveCeros(t *testing.T) {
	f := newDashboard(t)
	f.repo.EXPECT().RevenueBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
	f.repo.EXPECT().Outstanding(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().Inventory(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().BudgetTotals(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, decimal.Zero, nil)
	f.repo.EXPECT().RevenueByMonth(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.employees.EXPECT().ListByCompany(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.entries.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.uc.GetSummary(context.Background(), "co-1")
	require.NoError(t, err)
	assert.True(t, res.OutstandingTotal.IsZero())
	assert.True(t, res.BudgetUtilization.IsZero())
	assert.NotNil(t, res.RevenueByMonth)
}
