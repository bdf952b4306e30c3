package usecase_test

import (
	"context"
	"testing"
	"time"

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

func TestBudgetUseCase_ResumenDelMesEnCurso(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBudgetRepository(ctrl)
	uc := usecase.NewBudgetUseCase(repo, sanitize.New()).
		WithClock(func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) })

	repo.EXPECT().ListByPeriod(gomock.Any(), "co-1", "2026-10").Return([]*entity.BudgetCategory{
		{ID: "b1", Name: "Materials", Period: "2026-10", Planned: d("1000"), Spent: d("1200")},
		{ID: "b2", Name: "Fuel", Period: "2026-10", Planned: d("500"), Spent: d("100")},
	}, nil)

	res, err := uc.Summary(context.Background(), "co-1", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10", res.Period)
	require.Len(t, res.Categories, 2)
	assert.True(t, res.Categories[0].OverSpent)
	assert.True(t, d("100").Equal(res.Categories[0].Progress), "el avance se acota a 100")
	assert.True(t, d("-200").Equal(res.Categories[0].Remaining))
	assert.True(t, d("20").Equal(res.Categories[1].Progress))
	assert.True(t, d("86.67").Equal(res.Utilization))
}

func TestBudgetUseCase_Validaciones(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBudgetRepository(ctrl)
	uc := usecase.NewBudgetUseCase(repo, sanitize.New())

	_, err := uc.Create(context.Background(), "co-1", dto.CreateBudgetCategoryRequest{Name: "Fuel", Period: "2026-13"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Summary(context.Background(), "co-1", "octubre")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordSpend(context.Background(), "co-1", "b1", dto.RecordSpendRequest{Amount: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.EXPECT().GetByID(gomock.Any(), "b1").Return(&entity.BudgetCategory{ID: "b1", CompanyID: "otra"}, nil)
	_, err = uc.RecordSpend(context.Background(), "co-1", "b1", dto.RecordSpendRequest{Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBudgetUseCase_RegistrarGasto(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBudgetRepository(ctrl)
	uc := usecase.NewBudgetUseCase(repo, sanitize.New())

	repo.EXPECT().GetByID(gomock.Any(), "b1").Return(&entity.BudgetCategory{ID: "b1", CompanyID: "co-1"}, nil)
	repo.EXPECT().AddSpent(gomock.Any(), "b1", d("75.5")).Return(&entity.BudgetCategory{ID: "b1", Planned: d("100"), Spent: d("75.5")}, nil)
	res, err := uc.RecordSpend(context.Background(), "co-1", "b1", dto.RecordSpendRequest{Amount: d("75.5")})
	require.NoError(t, err)
	assert.True(t, d("75.5").Equal(res.Progress))
	assert.False(t, res.OverSpent)
}
