package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=company_repository.go -destination=mocks/company_repository_mock.go -package=mocks

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// UpdatePlan asigna el plan y su vencimiento (checkout aprobado).
	UpdatePlan(ctx context.Context, companyID, planID string, expiresAt *time.Time) error
	Delete(ctx context.Context, id string) error
}
