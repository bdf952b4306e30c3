package repository

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=customer_repository.go -destination=mocks/customer_repository_mock.go -package=mocks

// CustomerFilter filtros del listado del CRM.
type CustomerFilter struct {
	Status string // vacío = todos
	Search string // coincidencia parcial por nombre o email
	Limit  int
	Offset int
}

// CustomerRepository puerto de persistencia de clientes (CRM).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Customer, error)
	List(ctx context.Context, companyID string, f CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
