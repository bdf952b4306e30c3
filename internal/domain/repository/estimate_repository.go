package repository

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=estimate_repository.go -destination=mocks/estimate_repository_mock.go -package=mocks

// EstimateRepository puerto de persistencia de cotizaciones guardadas.
type EstimateRepository interface {
	Create(ctx context.Context, e *entity.Estimate) error
	GetByID(ctx context.Context, id string) (*entity.Estimate, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Estimate, error)
	Delete(ctx context.Context, id string) error
}

// DraftStore guarda el proyecto EasyCalc en curso de cada usuario (uno por usuario).
// Devuelve (nil, nil) si el usuario no tiene borrador.
type DraftStore interface {
	Save(ctx context.Context, d *entity.EstimateDraft) error
	Get(ctx context.Context, userID string) (*entity.EstimateDraft, error)
	Delete(ctx context.Context, userID string) error
}
