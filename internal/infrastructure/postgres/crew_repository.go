package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository  = (*EmployeeRepo)(nil)
	_ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Empleados
// ──────────────────────────────────────────────────────────────────────────────

// EmployeeRepo persistencia de la cuadrilla.
type EmployeeRepo struct {
	q Querier
}

func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, company_id, name, role, email, phone, hourly_rate, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	if err := row.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Role, &e.Email, &e.Phone, &e.HourlyRate,
		&e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.CompanyID, e.Name, e.Role, e.Email, e.Phone, e.HourlyRate, e.Status, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// ListByCompany lista empleados; status vacío = todos.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID, status string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees
		WHERE company_id = $1 AND ($2 = '' OR status = $2) ORDER BY name`, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) CountActive(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE company_id = $1 AND status = $2`,
		companyID, entity.EmployeeStatusActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	tag, err := r.q.Exec(ctx, `UPDATE employees SET name = $2, role = $3, email = $4, phone = $5,
		hourly_rate = $6, status = $7, updated_at = $8 WHERE id = $1`,
		e.ID, e.Name, e.Role, e.Email, e.Phone, e.HourlyRate, e.Status, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de horas
// ──────────────────────────────────────────────────────────────────────────────

// TimeEntryRepo persistencia de horas trabajadas.
type TimeEntryRepo struct {
	q Querier
}

func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

const timeEntryColumns = `id, company_id, employee_id, work_date, hours, job_ref, notes, created_at`

func scanTimeEntry(row pgx.Row) (*entity.TimeEntry, error) {
	var t entity.TimeEntry
	if err := row.Scan(&t.ID, &t.CompanyID, &t.EmployeeID, &t.WorkDate, &t.Hours, &t.JobRef, &t.Notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TimeEntryRepo) Create(ctx context.Context, t *entity.TimeEntry) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO time_entries (`+timeEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CompanyID, t.EmployeeID, t.WorkDate, t.Hours, t.JobRef, t.Notes, t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

func (r *TimeEntryRepo) GetByID(ctx context.Context, id string) (*entity.TimeEntry, error) {
	t, err := scanTimeEntry(r.q.QueryRow(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return t, nil
}

// ListByPeriod entradas con work_date en [from, to); employeeID vacío = todos.
func (r *TimeEntryRepo) ListByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]*entity.TimeEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT `+timeEntryColumns+` FROM time_entries
		WHERE company_id = $1 AND work_date >= $2 AND work_date < $3 AND ($4 = '' OR employee_id::text = $4)
		ORDER BY work_date, employee_id`, companyID, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.TimeEntry
	for rows.Next() {
		t, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TimeEntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
