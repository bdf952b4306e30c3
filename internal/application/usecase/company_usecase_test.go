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

func TestCompanyUseCase_CreaEnPlanGratuito(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	uc := usecase.NewCompanyUseCase(repo, sanitize.New())

	repo.EXPECT().GetByTaxID(gomock.Any(), "900123").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "<b>Acme</b> Builders", TaxID: " 900123 "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Builders", out.Name)
	assert.Equal(t, entity.PlanFree, out.PlanID)
}

func TestCompanyUseCase_TaxIDDuplicado(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	uc := usecase.NewCompanyUseCase(repo, sanitize.New())

	repo.EXPECT().GetByTaxID(gomock.Any(), "900123").Return(&entity.Company{ID: "co-1"}, nil)

	_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Acme", TaxID: "900123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyUseCase_NombreSoloMarkupEsInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	uc := usecase.NewCompanyUseCase(repo, sanitize.New())

	repo.EXPECT().GetByTaxID(gomock.Any(), "1").Return(nil, nil)

	_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "<script>alert(1)</script>", TaxID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyUseCase_ActualizarEmpresaInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	uc := usecase.NewCompanyUseCase(repo, sanitize.New())

	repo.EXPECT().GetByID(gomock.Any(), "co-x").Return(nil, nil)

	name := "Nuevo"
	_, err := uc.Update(context.Background(), "co-x", dto.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_EliminarPropagaNoEncontrado(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	uc := usecase.NewCompanyUseCase(repo, sanitize.New())

	repo.EXPECT().Delete(gomock.Any(), "co-x").Return(domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), "co-x"), domain.ErrNotFound)
}
