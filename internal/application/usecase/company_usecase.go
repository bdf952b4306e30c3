package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	sanitizer ports.Sanitizer
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, sanitizer ports.Sanitizer) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, sanitizer: sanitizer}
}

// Create crea una nueva empresa en el plan gratuito. Devuelve domain.ErrDuplicate si el tax id ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      uc.sanitizer.Text(in.Name),
		TaxID:     taxID,
		Address:   uc.sanitizer.Text(in.Address),
		Phone:     uc.sanitizer.Text(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Status:    "active",
		PlanID:    entity.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if company.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return ToCompanyResponse(company), nil
}

// Update aplica los campos presentes.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.Address != nil {
		company.Address = uc.sanitizer.Text(*in.Address)
	}
	if in.Phone != nil {
		company.Phone = uc.sanitizer.Text(*in.Phone)
	}
	if in.Email != nil {
		company.Email = strings.TrimSpace(*in.Email)
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	if company.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// Delete elimina la empresa.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToCompanyResponse convierte la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		Status:        c.Status,
		PlanID:        c.PlanID,
		PlanExpiresAt: c.PlanExpiresAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
