package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=budget_repository.go -destination=mocks/budget_repository_mock.go -package=mocks

// BudgetRepository puerto de persistencia de partidas presupuestales.
type BudgetRepository interface {
	Create(ctx context.Context, b *entity.BudgetCategory) error
	GetByID(ctx context.Context, id string) (*entity.BudgetCategory, error)
	ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.BudgetCategory, error)
	Update(ctx context.Context, b *entity.BudgetCategory) error
	AddSpent(ctx context.Context, id string, amount decimal.Decimal) (*entity.BudgetCategory, error)
	Delete(ctx context.Context, id string) error
}
