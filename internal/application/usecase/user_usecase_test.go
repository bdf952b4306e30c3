package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
)

func strPtr(s string) *string { return &s }

func TestUserUseCase_UsuarioDeOtraEmpresa_NoEncontrado(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUserUseCase(repo, sanitize.New())

	repo.EXPECT().GetByID(gomock.Any(), "u-2").Return(&entity.User{ID: "u-2", CompanyID: "otra"}, nil)

	_, err := uc.GetByID(context.Background(), "co-1", "u-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ActualizaNombreSanitizadoYRol(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUserUseCase(repo, sanitize.New())

	repo.EXPECT().GetByID(gomock.Any(), "u-2").Return(&entity.User{ID: "u-2", CompanyID: "co-1", Role: "staff", Status: "active"}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	out, err := uc.Update(context.Background(), "co-1", "u-1", "u-2", dto.UpdateUserRequest{
		Name: strPtr("<i>Luis</i>"),
		Role: strPtr("manager"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis", out.Name)
	assert.Equal(t, "manager", out.Role)
}

func TestUserUseCase_AdminNoPuedeQuitarseSuRol(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUserUseCase(repo, sanitize.New())

	repo.EXPECT().GetByID(gomock.Any(), "u-1").Return(&entity.User{ID: "u-1", CompanyID: "co-1", Role: "admin", Status: "active"}, nil)

	_, err := uc.Update(context.Background(), "co-1", "u-1", "u-1", dto.UpdateUserRequest{Role: strPtr("staff")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUseCase_NoPuedeEliminarseASiMismo(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(ctrl), sanitize.New())

	err := uc.Delete(context.Background(), "co-1", "u-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUseCase_ListaDeLaEmpresa(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUserUseCase(repo, sanitize.New())

	repo.EXPECT().ListByCompany(gomock.Any(), "co-1", 20, 0).Return([]*entity.User{
		{ID: "u-1", CompanyID: "co-1", Email: "a@obrix.io"},
		{ID: "u-2", CompanyID: "co-1", Email: "b@obrix.io"},
	}, nil)

	out, err := uc.List(context.Background(), "co-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b@obrix.io", out[1].Email)
}
