package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/usecase"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
)

var testCatalog = &pricing.Catalog{
	Entitlements: map[string]pricing.Entitlements{
		"free": {Features: []string{entity.FeatureEasyCalc, entity.FeatureCRM}, Limits: map[string]int{entity.LimitMaxEmployees: 0}},
		"pro":  {Features: []string{entity.FeatureCrew, entity.FeatureEasyCalc}, Limits: map[string]int{entity.LimitMaxEmployees: 10}},
		"biz":  {Features: []string{entity.FeatureCrew, entity.FeatureESign}},
	},
}

func TestEntitlementService_PlanVigenteYVencido(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, 0, -1)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	svc := usecase.NewEntitlementService(repo, testCatalog).WithClock(func() time.Time { return now })

	repo.EXPECT().GetByID(gomock.Any(), "vigente").Return(&entity.Company{ID: "vigente", PlanID: "pro", PlanExpiresAt: &future}, nil).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), "vencida").Return(&entity.Company{ID: "vencida", PlanID: "pro", PlanExpiresAt: &past}, nil).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), "nada").Return(nil, nil).AnyTimes()

	ok, err := svc.HasFeature(context.Background(), "vigente", entity.FeatureCrew)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasFeature(context.Background(), "vencida", entity.FeatureCrew)
	require.NoError(t, err)
	assert.False(t, ok, "plan vencido cae a free")

	_, err = svc.HasFeature(context.Background(), "nada", entity.FeatureCrew)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	desc, err := svc.Describe(context.Background(), "vencida")
	require.NoError(t, err)
	assert.Equal(t, "free", desc.PlanID)
	assert.Equal(t, []string{"crm", "easycalc"}, desc.Features)
}

func TestEntitlementService_Limites(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	svc := usecase.NewEntitlementService(repo, testCatalog)

	repo.EXPECT().GetByID(gomock.Any(), "pro").Return(&entity.Company{PlanID: "pro"}, nil).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), "biz").Return(&entity.Company{PlanID: "biz"}, nil).AnyTimes()

	assert.NoError(t, svc.CheckLimit(context.Background(), "pro", entity.LimitMaxEmployees, 9))
	assert.ErrorIs(t, svc.CheckLimit(context.Background(), "pro", entity.LimitMaxEmployees, 10), domain.ErrLimitReached)
	assert.NoError(t, svc.CheckLimit(context.Background(), "biz", entity.LimitMaxEmployees, 500), "sin límite definido es ilimitado")
}
