package billing

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

// CustomerUseCase casos de uso del CRM.
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	sanitizer ports.Sanitizer
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, sanitizer ports.Sanitizer) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, sanitizer: sanitizer}
}

// Create crea un cliente. El tax id es opcional pero único por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := uc.sanitizer.Text(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	taxID := strings.TrimSpace(in.TaxID)
	if taxID != "" {
		existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	status := in.Status
	if status == "" {
		status = entity.CustomerStatusLead
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		TaxID:     taxID,
		Email:     strings.TrimSpace(in.Email),
		Phone:     uc.sanitizer.Text(in.Phone),
		Address:   uc.sanitizer.Text(in.Address),
		Notes:     uc.sanitizer.RichText(in.Notes),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// List lista clientes con filtro por estado y búsqueda.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, in dto.CustomerListRequest) ([]dto.CustomerResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, companyID, repository.CustomerFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToCustomerResponse(c))
	}
	return out, nil
}

// Update aplica los campos presentes.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.TaxID != nil {
		taxID := strings.TrimSpace(*in.TaxID)
		if taxID != "" && taxID != c.TaxID {
			other, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != c.ID {
				return nil, domain.ErrDuplicate
			}
		}
		c.TaxID = taxID
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = uc.sanitizer.Text(*in.Phone)
	}
	if in.Address != nil {
		c.Address = uc.sanitizer.Text(*in.Address)
	}
	if in.Notes != nil {
		c.Notes = uc.sanitizer.RichText(*in.Notes)
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// UpdateStatus cambia el estado del cliente (lead, active, inactive).
func (uc *CustomerUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.CustomerResponse, error) {
	switch status {
	case entity.CustomerStatusLead, entity.CustomerStatusActive, entity.CustomerStatusInactive:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.Update(ctx, companyID, id, dto.UpdateCustomerRequest{Status: &status})
}

// Delete elimina el cliente. Con facturas asociadas devuelve domain.ErrConflict.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) owned(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// ToCustomerResponse convierte la entidad a DTO.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
