package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/payroll"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// LimitChecker verifica los límites del plan (EntitlementService lo implementa).
type LimitChecker interface {
	CheckLimit(ctx context.Context, companyID, limit string, current int) error
}

var maxDailyHours = decimal.NewFromInt(24)

// CrewUseCase cuadrilla, registro de horas y nómina.
type CrewUseCase struct {
	employees repository.EmployeeRepository
	entries   repository.TimeEntryRepository
	limits    LimitChecker
	sanitizer ports.Sanitizer
	now       func() time.Time
}

// NewCrewUseCase construye el caso de uso.
func NewCrewUseCase(
	employees repository.EmployeeRepository,
	entries repository.TimeEntryRepository,
	limits LimitChecker,
	sanitizer ports.Sanitizer,
) *CrewUseCase {
	return &CrewUseCase{employees: employees, entries: entries, limits: limits, sanitizer: sanitizer, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *CrewUseCase) WithClock(now func() time.Time) *CrewUseCase {
	uc.now = now
	return uc
}

// CreateEmployee agrega un empleado activo respetando max_employees del plan.
func (uc *CrewUseCase) CreateEmployee(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := uc.sanitizer.Text(in.Name)
	if name == "" || in.HourlyRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	active, err := uc.employees.CountActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := uc.limits.CheckLimit(ctx, companyID, entity.LimitMaxEmployees, active); err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       name,
		Role:       uc.sanitizer.Text(in.Role),
		Email:      in.Email,
		Phone:      uc.sanitizer.Text(in.Phone),
		HourlyRate: in.HourlyRate,
		Status:     entity.EmployeeStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// ListEmployees lista la cuadrilla; status vacío = todos.
func (uc *CrewUseCase) ListEmployees(ctx context.Context, companyID, status string) ([]dto.EmployeeResponse, error) {
	list, err := uc.employees.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// UpdateEmployee modifica un empleado. Reactivar uno inactivo también cuenta contra el límite.
func (uc *CrewUseCase) UpdateEmployee(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.ownedEmployee(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && *in.Status == entity.EmployeeStatusActive && e.Status != entity.EmployeeStatusActive {
		active, err := uc.employees.CountActive(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if err := uc.limits.CheckLimit(ctx, companyID, entity.LimitMaxEmployees, active); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		e.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.Role != nil {
		e.Role = uc.sanitizer.Text(*in.Role)
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Phone != nil {
		e.Phone = uc.sanitizer.Text(*in.Phone)
	}
	if in.HourlyRate != nil {
		e.HourlyRate = *in.HourlyRate
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if e.Name == "" || e.HourlyRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	e.UpdatedAt = uc.now()
	if err := uc.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// DeleteEmployee elimina un empleado (sus horas se eliminan en cascada).
func (uc *CrewUseCase) DeleteEmployee(ctx context.Context, companyID, id string) error {
	if _, err := uc.ownedEmployee(ctx, companyID, id); err != nil {
		return err
	}
	return uc.employees.Delete(ctx, id)
}

// LogTime registra horas de un empleado activo en un día.
func (uc *CrewUseCase) LogTime(ctx context.Context, companyID string, in dto.CreateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	day, err := time.Parse(dto.DateLayout, in.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("%w: work_date inválida", domain.ErrInvalidInput)
	}
	if !in.Hours.IsPositive() || in.Hours.GreaterThan(maxDailyHours) {
		return nil, fmt.Errorf("%w: hours debe estar entre 0 y 24", domain.ErrInvalidInput)
	}
	e, err := uc.ownedEmployee(ctx, companyID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if e.Status != entity.EmployeeStatusActive {
		return nil, fmt.Errorf("%w: el empleado está inactivo", domain.ErrConflict)
	}
	t := &entity.TimeEntry{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: e.ID,
		WorkDate:   day,
		Hours:      in.Hours,
		JobRef:     uc.sanitizer.Text(in.JobRef),
		Notes:      uc.sanitizer.Text(in.Notes),
		CreatedAt:  uc.now(),
	}
	if err := uc.entries.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTimeEntryResponse(t), nil
}

// ListTime registros del período.
func (uc *CrewUseCase) ListTime(ctx context.Context, companyID string, in dto.PeriodRequest) ([]dto.TimeEntryResponse, error) {
	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.entries.ListByPeriod(ctx, companyID, from, to.AddDate(0, 0, 1), in.EmployeeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimeEntryResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTimeEntryResponse(t))
	}
	return out, nil
}

// DeleteTime elimina un registro de horas.
func (uc *CrewUseCase) DeleteTime(ctx context.Context, companyID, id string) error {
	t, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if t.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.entries.Delete(ctx, id)
}

// Payroll nómina del período con horas extra semanales.
func (uc *CrewUseCase) Payroll(ctx context.Context, companyID string, in dto.PeriodRequest) (*dto.PayrollSummaryDTO, error) {
	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	employees, err := uc.employees.ListByCompany(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	list, err := uc.entries.ListByPeriod(ctx, companyID, from, to.AddDate(0, 0, 1), in.EmployeeID)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]decimal.Decimal, len(employees))
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		rates[e.ID] = e.HourlyRate
		names[e.ID] = e.Name
	}
	entries := make([]payroll.Entry, 0, len(list))
	for _, t := range list {
		entries = append(entries, payroll.Entry{EmployeeID: t.EmployeeID, WorkDate: t.WorkDate, Hours: t.Hours})
	}
	s := payroll.Compute(entries, rates)

	res := &dto.PayrollSummaryDTO{
		From:          from.Format(dto.DateLayout),
		To:            to.Format(dto.DateLayout),
		Lines:         make([]dto.PayrollLineDTO, 0, len(s.Lines)),
		TotalHours:    s.TotalHours,
		TotalOvertime: s.TotalOvertime,
		TotalGross:    s.TotalGross,
	}
	for _, l := range s.Lines {
		res.Lines = append(res.Lines, dto.PayrollLineDTO{
			EmployeeID:    l.EmployeeID,
			EmployeeName:  names[l.EmployeeID],
			RegularHours:  l.RegularHours,
			OvertimeHours: l.OvertimeHours,
			HourlyRate:    l.HourlyRate,
			GrossPay:      l.GrossPay,
		})
	}
	return res, nil
}

// period rango inclusivo; por defecto el mes en curso.
func (uc *CrewUseCase) period(in dto.PeriodRequest) (time.Time, time.Time, error) {
	now := uc.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	var err error
	if in.From != "" {
		if from, err = time.Parse(dto.DateLayout, in.From); err != nil {
			return from, to, fmt.Errorf("%w: from inválida", domain.ErrInvalidInput)
		}
	}
	if in.To != "" {
		if to, err = time.Parse(dto.DateLayout, in.To); err != nil {
			return from, to, fmt.Errorf("%w: to inválida", domain.ErrInvalidInput)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func (uc *CrewUseCase) ownedEmployee(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Email:      e.Email,
		Phone:      e.Phone,
		HourlyRate: e.HourlyRate,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
	}
}

func toTimeEntryResponse(t *entity.TimeEntry) *dto.TimeEntryResponse {
	return &dto.TimeEntryResponse{
		ID:         t.ID,
		EmployeeID: t.EmployeeID,
		WorkDate:   t.WorkDate.Format(dto.DateLayout),
		Hours:      t.Hours,
		JobRef:     t.JobRef,
		Notes:      t.Notes,
	}
}
