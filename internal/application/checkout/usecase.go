// Package checkout planes publicados, checkout de suscripción con la pasarela de pagos,
// conciliación de precios y notificaciones de pago.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// TxRunner ejecuta fn con los repos de pagos y empresas atados a una misma transacción.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		subs repository.SubscriptionRepository,
		companies repository.CompanyRepository,
	) error) error
}

// UseCase checkout de planes.
type UseCase struct {
	catalog *pricing.Catalog
	gateway ports.PaymentGateway
	subs    repository.SubscriptionRepository
	tx      TxRunner
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. gateway nil deja el checkout deshabilitado
// (domain.ErrPaymentsDisabled) pero Plans y Reconcile siguen disponibles.
func NewUseCase(
	catalog *pricing.Catalog,
	gateway ports.PaymentGateway,
	subs repository.SubscriptionRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		catalog: catalog,
		gateway: gateway,
		subs:    subs,
		tx:      tx,
		log:     log.Component("checkout"),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Plans planes publicados en el orden de pricing.json.
func (uc *UseCase) Plans() []dto.PlanDTO {
	out := make([]dto.PlanDTO, 0, len(uc.catalog.Plans))
	for _, p := range uc.catalog.Plans {
		out = append(out, dto.PlanDTO{
			ID:       p.ID,
			Name:     p.Name,
			Amount:   p.Amount,
			Currency: p.Currency,
			Interval: p.Interval,
			Features: p.Features,
		})
	}
	return out
}

// Checkout crea la preferencia de pago del plan y registra el intento como pendiente.
func (uc *UseCase) Checkout(ctx context.Context, companyID, payerEmail, planID string) (*dto.CheckoutResponse, error) {
	plan, ok := uc.catalog.Plan(planID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !plan.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el plan %s no requiere pago", domain.ErrInvalidInput, plan.ID)
	}
	if uc.gateway == nil {
		return nil, domain.ErrPaymentsDisabled
	}

	paymentID := uuid.New().String()
	session, err := uc.gateway.CreateCheckout(ctx, ports.CheckoutRequest{
		ExternalReference: paymentID,
		PayerEmail:        payerEmail,
		Item: ports.CheckoutItem{
			ID:        plan.ID,
			Title:     "Obrix " + plan.Name,
			UnitPrice: plan.Amount,
			Currency:  plan.Currency,
		},
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sp := &entity.SubscriptionPayment{
		ID:           paymentID,
		CompanyID:    companyID,
		PlanID:       plan.ID,
		Amount:       plan.Amount,
		Currency:     plan.Currency,
		PreferenceID: session.PreferenceID,
		Status:       entity.PaymentStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.subs.Create(ctx, sp); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("plan", plan.ID).Str("payment_id", paymentID).Msg("checkout creado")
	return &dto.CheckoutResponse{PaymentID: paymentID, PreferenceID: session.PreferenceID, RedirectURL: session.RedirectURL}, nil
}

// HandleNotification procesa el aviso de pago del proveedor. Un pago aprobado extiende el
// plan de la empresa un intervalo; repetir la notificación no vuelve a extenderlo.
//
// El pago se reclama con una actualización condicional dentro de la misma transacción que
// extiende el plan: entre entregas concurrentes solo una lo reclama, y si la extensión
// falla el reclamo se revierte y el reintento del proveedor vuelve a procesarlo.
func (uc *UseCase) HandleNotification(ctx context.Context, providerPaymentID string) error {
	if uc.gateway == nil {
		return domain.ErrPaymentsDisabled
	}
	info, err := uc.gateway.GetPayment(ctx, providerPaymentID)
	if err != nil {
		return err
	}
	sp, err := uc.subs.GetByID(ctx, info.ExternalReference)
	if err != nil {
		return err
	}
	if sp == nil {
		return domain.ErrNotFound
	}
	if sp.Status != entity.PaymentStatusPending {
		return nil
	}

	switch info.Status {
	case entity.PaymentStatusApproved:
		if info.Amount.IsPositive() && info.Amount.LessThan(sp.Amount) {
			uc.log.Error().Str("payment_id", sp.ID).Str("paid", info.Amount.String()).Str("expected", sp.Amount.String()).Msg("monto pagado menor al del plan")
			return fmt.Errorf("%w: monto pagado menor al del plan", domain.ErrConflict)
		}
		return uc.tx.RunCheckout(ctx, func(subs repository.SubscriptionRepository, companies repository.CompanyRepository) error {
			claimed, err := subs.ClaimPending(ctx, sp.ID, entity.PaymentStatusApproved, info.ID)
			if err != nil {
				return err
			}
			if !claimed {
				uc.log.Info().Str("payment_id", sp.ID).Msg("notificación duplicada, pago ya procesado")
				return nil
			}
			return uc.extendPlan(ctx, companies, sp)
		})
	case entity.PaymentStatusRejected, "cancelled", "refunded", "charged_back":
		_, err := uc.subs.ClaimPending(ctx, sp.ID, entity.PaymentStatusRejected, info.ID)
		return err
	}
	return nil
}

func (uc *UseCase) extendPlan(ctx context.Context, companies repository.CompanyRepository, sp *entity.SubscriptionPayment) error {
	plan, ok := uc.catalog.Plan(sp.PlanID)
	if !ok {
		return fmt.Errorf("checkout: plan %s ya no existe: %w", sp.PlanID, domain.ErrNotFound)
	}
	company, err := companies.GetByIDForUpdate(ctx, sp.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	now := uc.now()
	var current *time.Time
	if company.EffectivePlan(now) == plan.ID {
		current = company.PlanExpiresAt
	}
	expires := plan.Extend(current, now)
	if err := companies.UpdatePlan(ctx, company.ID, plan.ID, &expires); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", company.ID).Str("plan", plan.ID).Time("expires_at", expires).Msg("plan extendido")
	return nil
}

// History intentos de checkout de la empresa.
func (uc *UseCase) History(ctx context.Context, companyID string) ([]dto.SubscriptionPaymentResponse, error) {
	list, err := uc.subs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.SubscriptionPaymentResponse{
			ID:        p.ID,
			PlanID:    p.PlanID,
			Amount:    p.Amount,
			Currency:  p.Currency,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// Reconcile compara pricing.json contra el mapa de precios del proveedor.
func (uc *UseCase) Reconcile() dto.ReconcileReportDTO {
	return ReconcileReport(uc.catalog, uc.now())
}

// ReconcileReport arma el reporte de conciliación (también lo usa la CLI).
func ReconcileReport(catalog *pricing.Catalog, now time.Time) dto.ReconcileReportDTO {
	report := dto.ReconcileReportDTO{CheckedAt: now.UTC(), Plans: len(catalog.Plans), Issues: []dto.ReconcileIssueDTO{}}
	for _, is := range pricing.Reconcile(catalog.Plans, catalog.PriceMap) {
		report.Issues = append(report.Issues, dto.ReconcileIssueDTO{
			PlanID:   is.PlanID,
			Kind:     is.Kind,
			Expected: is.Expected,
			Actual:   is.Actual,
		})
	}
	return report
}
