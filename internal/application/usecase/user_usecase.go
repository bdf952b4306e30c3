package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Obrix-api/internal/application/auth"
	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// UserUseCase administración de usuarios de una empresa.
type UserUseCase struct {
	repo      repository.UserRepository
	sanitizer ports.Sanitizer
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, sanitizer ports.Sanitizer) *UserUseCase {
	return &UserUseCase{repo: repo, sanitizer: sanitizer}
}

// GetByID obtiene un usuario de la empresa. ErrNotFound si no existe o es de otra empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Update cambia nombre, rol o estado. Un admin no puede quitarse a sí mismo el rol admin.
func (uc *UserUseCase) Update(ctx context.Context, companyID, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		user.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.Role != nil {
		if id == actorID && *in.Role != user.Role {
			return nil, domain.ErrConflict
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if id == actorID && *in.Status != "active" {
			return nil, domain.ErrConflict
		}
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario de la empresa (no a sí mismo).
func (uc *UserUseCase) Delete(ctx context.Context, companyID, actorID, id string) error {
	if id == actorID {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
