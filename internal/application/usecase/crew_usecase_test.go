package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCrew(t *testing.T, plan string) (*usecase.CrewUseCase, *mocks.MockEmployeeRepository, *mocks.MockTimeEntryRepository) {
	ctrl := gomock.NewController(t)
	employees := mocks.NewMockEmployeeRepository(ctrl)
	entries := mocks.NewMockTimeEntryRepository(ctrl)
	companies := mocks.NewMockCompanyRepository(ctrl)
	companies.EXPECT().GetByID(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", PlanID: plan}, nil).AnyTimes()
	limits := usecase.NewEntitlementService(companies, testCatalog)

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := usecase.NewCrewUseCase(employees, entries, limits, sanitize.New()).WithClock(func() time.Time { return now })
	return uc, employees, entries
}

func TestCrewUseCase_LimiteDeEmpleadosDelPlan(t *testing.T) {
	uc, employees, _ := newCrew(t, "pro")

	employees.EXPECT().CountActive(gomock.Any(), "co-1").Return(10, nil)
	_, err := uc.CreateEmployee(context.Background(), "co-1", dto.CreateEmployeeRequest{Name: "Luis", HourlyRate: d("25")})
	assert.ErrorIs(t, err, domain.ErrLimitReached)

	employees.EXPECT().CountActive(gomock.Any(), "co-1").Return(9, nil)
	employees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.CreateEmployee(context.Background(), "co-1", dto.CreateEmployeeRequest{Name: "Luis", HourlyRate: d("25")})
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeStatusActive, res.Status)
}

func TestCrewUseCase_PlanSinLimiteDefinidoEsIlimitado(t *testing.T) {
	uc, employees, _ := newCrew(t, "biz")
	employees.EXPECT().CountActive(gomock.Any(), "co-1").Return(500, nil)
	employees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	_, err := uc.CreateEmployee(context.Background(), "co-1", dto.CreateEmployeeRequest{Name: "Eva"})
	require.NoError(t, err)
}

func TestCrewUseCase_ReactivarCuentaContraElLimite(t *testing.T) {
	uc, employees, _ := newCrew(t, "pro")
	employees.EXPECT().GetByID(gomock.Any(), "e-1").Return(&entity.Employee{ID: "e-1", CompanyID: "co-1", Name: "Luis", Status: entity.EmployeeStatusInactive}, nil)
	employees.EXPECT().CountActive(gomock.Any(), "co-1").Return(10, nil)

	active := entity.EmployeeStatusActive
	_, err := uc.UpdateEmployee(context.Background(), "co-1", "e-1", dto.UpdateEmployeeRequest{Status: &active})
	assert.ErrorIs(t, err, domain.ErrLimitReached)
}

func TestCrewUseCase_RegistroDeHoras(t *testing.T) {
	uc, employees, entries := newCrew(t, "pro")

	_, err := uc.LogTime(context.Background(), "co-1", dto.CreateTimeEntryRequest{EmployeeID: "e-1", WorkDate: "2026-06-01", Hours: d("25")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.LogTime(context.Background(), "co-1", dto.CreateTimeEntryRequest{EmployeeID: "e-1", WorkDate: "01/06/2026", Hours: d("8")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	employees.EXPECT().GetByID(gomock.Any(), "inactivo").Return(&entity.Employee{ID: "inactivo", CompanyID: "co-1", Status: entity.EmployeeStatusInactive}, nil)
	_, err = uc.LogTime(context.Background(), "co-1", dto.CreateTimeEntryRequest{EmployeeID: "inactivo", WorkDate: "2026-06-01", Hours: d("8")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	employees.EXPECT().GetByID(gomock.Any(), "e-1").Return(&entity.Employee{ID: "e-1", CompanyID: "co-1", Status: entity.EmployeeStatusActive}, nil)
	entries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.LogTime(context.Background(), "co-1", dto.CreateTimeEntryRequest{EmployeeID: "e-1", WorkDate: "2026-06-01", Hours: d("7.5"), JobRef: "<b>J-12</b>"})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", res.WorkDate)
	assert.Equal(t, "J-12", res.JobRef)
}

func TestCrewUseCase_NominaDelMesEnCursoConHorasExtra(t *testing.T) {
	uc, employees, entries := newCrew(t, "pro")
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	employees.EXPECT().ListByCompany(gomock.Any(), "co-1", "").Return([]*entity.Employee{
		{ID: "e-1", Name: "Luis", HourlyRate: d("20")},
	}, nil)
	// Lunes 1 a viernes 5 de junio: 5 × 9 h = 45 h → 5 h extra.
	var list []*entity.TimeEntry
	for i := 0; i < 5; i++ {
		list = append(list, &entity.TimeEntry{EmployeeID: "e-1", WorkDate: from.AddDate(0, 0, i), Hours: d("9")})
	}
	entries.EXPECT().ListByPeriod(gomock.Any(), "co-1", from, to, "").Return(list, nil)

	res, err := uc.Payroll(context.Background(), "co-1", dto.PeriodRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", res.From)
	assert.Equal(t, "2026-06-30", res.To)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Luis", res.Lines[0].EmployeeName)
	assert.True(t, d("40").Equal(res.Lines[0].RegularHours))
	assert.True(t, d("5").Equal(res.Lines[0].OvertimeHours))
	// 40 × 20 + 5 × 20 × 1.5 = 950
	assert.Equal(t, "950.00", res.TotalGross.StringFixed(2))
}

func TestCrewUseCase_PeriodoInvertido(t *testing.T) {
	uc, _, _ := newCrew(t, "pro")
	_, err := uc.ListTime(context.Background(), "co-1", dto.PeriodRequest{From: "2026-06-10", To: "2026-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
