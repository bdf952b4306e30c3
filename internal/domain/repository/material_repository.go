package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=material_repository.go -destination=mocks/material_repository_mock.go -package=mocks

// MaterialRepository puerto de persistencia del inventario de materiales (MatTrack).
type MaterialRepository interface {
	Create(ctx context.Context, item *entity.MaterialItem) error
	GetByID(ctx context.Context, id string) (*entity.MaterialItem, error)
	GetBySKU(ctx context.Context, companyID, sku string) (*entity.MaterialItem, error)
	ListByCompany(ctx context.Context, companyID string, lowStockOnly bool) ([]*entity.MaterialItem, error)
	Update(ctx context.Context, item *entity.MaterialItem) error
	// AdjustQuantity suma delta a la existencia de forma atómica; devuelve domain.ErrConflict
	// si el resultado quedaría negativo.
	AdjustQuantity(ctx context.Context, id string, delta decimal.Decimal) (*entity.MaterialItem, error)
	Delete(ctx context.Context, id string) error
}
