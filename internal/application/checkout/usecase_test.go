package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/checkout"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	portmocks "github.com/jhoicas/Obrix-api/internal/application/ports/mocks"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func testCatalog() *pricing.Catalog {
	return &pricing.Catalog{
		Plans: []pricing.Plan{
			{ID: "free", Name: "Free", Amount: decimal.Zero, Currency: "USD", Interval: pricing.IntervalMonth},
			{ID: "pro", Name: "Pro", Amount: decimal.RequireFromString("29"), Currency: "USD", Interval: pricing.IntervalMonth},
			{ID: "business", Name: "Business", Amount: decimal.RequireFromString("790"), Currency: "USD", Interval: pricing.IntervalYear},
		},
		PriceMap: map[string]pricing.PriceRef{
			"pro":    {PriceID: "price_pro", Amount: decimal.RequireFromString("29"), Currency: "USD"},
			"legacy": {PriceID: "price_old", Amount: decimal.RequireFromString("9")},
		},
	}
}

// fakeTx serializa los callbacks como lo haría el bloqueo de fila de la transacción.
type fakeTx struct {
	mu        sync.Mutex
	subs      repository.SubscriptionRepository
	companies repository.CompanyRepository
}

func (f *fakeTx) RunCheckout(_ context.Context, fn func(repository.SubscriptionRepository, repository.CompanyRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.subs, f.companies)
}

type fixture struct {
	uc        *checkout.UseCase
	gateway   *portmocks.MockPaymentGateway
	subs      *mocks.MockSubscriptionRepository
	companies *mocks.MockCompanyRepository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		gateway:   portmocks.NewMockPaymentGateway(ctrl),
		subs:      mocks.NewMockSubscriptionRepository(ctrl),
		companies: mocks.NewMockCompanyRepository(ctrl),
	}
	tx := &fakeTx{subs: f.subs, companies: f.companies}
	f.uc = checkout.NewUseCase(testCatalog(), f.gateway, f.subs, tx, logger.Nop()).
		WithClock(func() time.Time { return now })
	return f
}

func TestPlans_ListaEnOrden(t *testing.T) {
	f := newFixture(t)
	plans := f.uc.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, "year", plans[2].Interval)
}

func TestCheckout_CreaPreferenciaYPagoPendiente(t *testing.T) {
	f := newFixture(t)
	f.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
		assert.Equal(t, "pro", req.Item.ID)
		assert.True(t, decimal.RequireFromString("29").Equal(req.Item.UnitPrice))
		assert.NotEmpty(t, req.ExternalReference)
		return &ports.CheckoutSession{PreferenceID: "pref-1", RedirectURL: "https://mp.test/init"}, nil
	})
	f.subs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sp *entity.SubscriptionPayment) error {
		assert.Equal(t, entity.PaymentStatusPending, sp.Status)
		assert.Equal(t, "pref-1", sp.PreferenceID)
		return nil
	})

	res, err := f.uc.Checkout(context.Background(), "co-1", "owner@example.com", "pro")
	require.NoError(t, err)
	assert.Equal(t, "https://mp.test/init", res.RedirectURL)
}

func TestCheckout_PlanDesconocidoGratisOSinPasarela(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Checkout(context.Background(), "co-1", "", "enterprise")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Checkout(context.Background(), "co-1", "", "free")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	disabled := checkout.NewUseCase(testCatalog(), nil, f.subs, nil, logger.Nop())
	_, err = disabled.Checkout(context.Background(), "co-1", "", "pro")
	assert.ErrorIs(t, err, domain.ErrPaymentsDisabled)
}

func TestHandleNotification_AprobadoExtiendeDesdeVencimientoVigente(t *testing.T) {
	f := newFixture(t)
	current := now.AddDate(0, 0, 10)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(&ports.PaymentInfo{ID: "mp-1", Status: "approved", ExternalReference: "sp-1"}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-1").Return(&entity.SubscriptionPayment{ID: "sp-1", CompanyID: "co-1", PlanID: "pro", Amount: decimal.RequireFromString("29"), Status: entity.PaymentStatusPending}, nil)
	f.subs.EXPECT().ClaimPending(gomock.Any(), "sp-1", entity.PaymentStatusApproved, "mp-1").Return(true, nil)
	f.companies.EXPECT().GetByIDForUpdate(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", PlanID: "pro", PlanExpiresAt: &current}, nil)
	f.companies.EXPECT().UpdatePlan(gomock.Any(), "co-1", "pro", gomock.Any()).DoAndReturn(func(_ context.Context, _, _ string, exp *time.Time) error {
		assert.Equal(t, current.AddDate(0, 1, 0), *exp)
		return nil
	})

	require.NoError(t, f.uc.HandleNotification(context.Background(), "mp-1"))
}

func TestHandleNotification_CambioDePlanCuentaDesdeHoy(t *testing.T) {
	f := newFixture(t)
	current := now.AddDate(0, 0, 10)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-2").Return(&ports.PaymentInfo{ID: "mp-2", Status: "approved", ExternalReference: "sp-2"}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-2").Return(&entity.SubscriptionPayment{ID: "sp-2", CompanyID: "co-1", PlanID: "business", Status: entity.PaymentStatusPending}, nil)
	f.subs.EXPECT().ClaimPending(gomock.Any(), "sp-2", entity.PaymentStatusApproved, "mp-2").Return(true, nil)
	f.companies.EXPECT().GetByIDForUpdate(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", PlanID: "pro", PlanExpiresAt: &current}, nil)
	f.companies.EXPECT().UpdatePlan(gomock.Any(), "co-1", "business", gomock.Any()).DoAndReturn(func(_ context.Context, _, _ string, exp *time.Time) error {
		assert.Equal(t, now.AddDate(1, 0, 0), *exp)
		return nil
	})

	require.NoError(t, f.uc.HandleNotification(context.Background(), "mp-2"))
}

func TestHandleNotification_RepetidaNoExtiendeDosVeces(t *testing.T) {
	f := newFixture(t)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(&ports.PaymentInfo{ID: "mp-1", Status: "approved", ExternalReference: "sp-1"}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-1").Return(&entity.SubscriptionPayment{ID: "sp-1", Status: entity.PaymentStatusApproved}, nil)
	require.NoError(t, f.uc.HandleNotification(context.Background(), "mp-1"))
}

func TestHandleNotification_EntregasConcurrentesExtiendenUnaVez(t *testing.T) {
	f := newFixture(t)
	current := now.AddDate(0, 0, 10)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(&ports.PaymentInfo{ID: "mp-1", Status: "approved", ExternalReference: "sp-1"}, nil).Times(2)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-1").Return(&entity.SubscriptionPayment{ID: "sp-1", CompanyID: "co-1", PlanID: "pro", Amount: decimal.RequireFromString("29"), Status: entity.PaymentStatusPending}, nil).Times(2)

	var (
		mu      sync.Mutex
		claimed bool
	)
	f.subs.EXPECT().ClaimPending(gomock.Any(), "sp-1", entity.PaymentStatusApproved, "mp-1").DoAndReturn(func(context.Context, string, string, string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if claimed {
			return false, nil
		}
		claimed = true
		return true, nil
	}).Times(2)
	f.companies.EXPECT().GetByIDForUpdate(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", PlanID: "pro", PlanExpiresAt: &current}, nil).Times(1)
	f.companies.EXPECT().UpdatePlan(gomock.Any(), "co-1", "pro", gomock.Any()).Return(nil).Times(1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.uc.HandleNotification(context.Background(), "mp-1")
		}(i)
	}
	wg.Wait()
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func TestHandleNotification_FalloAlExtenderDevuelveErrorParaReintento(t *testing.T) {
	f := newFixture(t)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(&ports.PaymentInfo{ID: "mp-1", Status: "approved", ExternalReference: "sp-1"}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-1").Return(&entity.SubscriptionPayment{ID: "sp-1", CompanyID: "co-1", PlanID: "pro", Status: entity.PaymentStatusPending}, nil)
	f.subs.EXPECT().ClaimPending(gomock.Any(), "sp-1", entity.PaymentStatusApproved, "mp-1").Return(true, nil)
	f.companies.EXPECT().GetByIDForUpdate(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", PlanID: "free"}, nil)
	f.companies.EXPECT().UpdatePlan(gomock.Any(), "co-1", "pro", gomock.Any()).Return(errors.New("conexión perdida"))

	assert.Error(t, f.uc.HandleNotification(context.Background(), "mp-1"))
}

func TestHandleNotification_RechazadoYMontoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-3").Return(&ports.PaymentInfo{ID: "mp-3", Status: "rejected", ExternalReference: "sp-3"}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-3").Return(&entity.SubscriptionPayment{ID: "sp-3", Status: entity.PaymentStatusPending}, nil)
	f.subs.EXPECT().ClaimPending(gomock.Any(), "sp-3", entity.PaymentStatusRejected, "mp-3").Return(true, nil)
	require.NoError(t, f.uc.HandleNotification(context.Background(), "mp-3"))

	f.gateway.EXPECT().GetPayment(gomock.Any(), "mp-4").Return(&ports.PaymentInfo{ID: "mp-4", Status: "approved", ExternalReference: "sp-4", Amount: decimal.NewFromInt(1)}, nil)
	f.subs.EXPECT().GetByID(gomock.Any(), "sp-4").Return(&entity.SubscriptionPayment{ID: "sp-4", Amount: decimal.NewFromInt(29), Status: entity.PaymentStatusPending}, nil)
	assert.ErrorIs(t, f.uc.HandleNotification(context.Background(), "mp-4"), domain.ErrConflict)
}

func TestReconcile_ReportaDiferencias(t *testing.T) {
	f := newFixture(t)
	report := f.uc.Reconcile()
	assert.False(t, report.OK())
	assert.Equal(t, 3, report.Plans)
	require.Len(t, report.Issues, 2)
	assert.Equal(t, "business", report.Issues[0].PlanID)
	assert.Equal(t, pricing.IssueMissing, report.Issues[0].Kind)
	assert.Equal(t, "legacy", report.Issues[1].PlanID)
	assert.Equal(t, pricing.IssueOrphan, report.Issues[1].Kind)
}
