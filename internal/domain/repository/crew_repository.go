package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=crew_repository.go -destination=mocks/crew_repository_mock.go -package=mocks

// EmployeeRepository puerto de persistencia de la cuadrilla.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID, status string) ([]*entity.Employee, error)
	CountActive(ctx context.Context, companyID string) (int, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
}

// TimeEntryRepository puerto de persistencia de registros de horas.
type TimeEntryRepository interface {
	Create(ctx context.Context, t *entity.TimeEntry) error
	GetByID(ctx context.Context, id string) (*entity.TimeEntry, error)
	// ListByPeriod entradas con work_date en [from, to).
	ListByPeriod(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]*entity.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}
