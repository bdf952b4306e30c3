package repository

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=document_repository.go -destination=mocks/document_repository_mock.go -package=mocks

// DocumentRepository puerto de persistencia de documentos y firmas.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Document, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	// TransitionStatus cambia el estado solo si el documento sigue en from.
	// Devuelve false si otra operación ya lo cambió.
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)
	AddSignature(ctx context.Context, s *entity.Signature) error
	ListSignatures(ctx context.Context, documentID string) ([]*entity.Signature, error)
	Delete(ctx context.Context, id string) error
}
