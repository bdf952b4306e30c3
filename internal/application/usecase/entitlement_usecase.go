package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// EntitlementService decide qué funcionalidades y límites tiene una empresa según su plan vigente.
// Es el único punto de la aplicación que conoce la relación plan → funcionalidades.
type EntitlementService struct {
	companyRepo repository.CompanyRepository
	catalog     *pricing.Catalog
	now         func() time.Time
}

// NewEntitlementService construye el servicio.
func NewEntitlementService(companyRepo repository.CompanyRepository, catalog *pricing.Catalog) *EntitlementService {
	return &EntitlementService{companyRepo: companyRepo, catalog: catalog, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *EntitlementService) WithClock(now func() time.Time) *EntitlementService {
	s.now = now
	return s
}

// For devuelve el plan vigente y sus entitlements. Un plan vencido cae a free.
func (s *EntitlementService) For(ctx context.Context, companyID string) (string, pricing.Entitlements, error) {
	if companyID == "" {
		return "", pricing.Entitlements{}, fmt.Errorf("entitlements: companyID es obligatorio")
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return "", pricing.Entitlements{}, err
	}
	if company == nil {
		return "", pricing.Entitlements{}, domain.ErrNotFound
	}
	plan := company.EffectivePlan(s.now())
	return plan, s.catalog.EntitlementsFor(plan), nil
}

// HasFeature informa si la empresa tiene la funcionalidad en su plan vigente.
// Devuelve error solo ante fallos de infraestructura o empresa inexistente.
func (s *EntitlementService) HasFeature(ctx context.Context, companyID, feature string) (bool, error) {
	_, ent, err := s.For(ctx, companyID)
	if err != nil {
		return false, err
	}
	return ent.Has(feature), nil
}

// CheckLimit devuelve domain.ErrLimitReached si current ya alcanzó el límite del plan.
// Un límite no definido es ilimitado.
func (s *EntitlementService) CheckLimit(ctx context.Context, companyID, limit string, current int) error {
	_, ent, err := s.For(ctx, companyID)
	if err != nil {
		return err
	}
	allowed, ok := ent.Limit(limit)
	if ok && current >= allowed {
		return fmt.Errorf("%w: %s=%d", domain.ErrLimitReached, limit, allowed)
	}
	return nil
}

// Describe entitlements vigentes para el frontend.
func (s *EntitlementService) Describe(ctx context.Context, companyID string) (*dto.EntitlementsResponse, error) {
	plan, ent, err := s.For(ctx, companyID)
	if err != nil {
		return nil, err
	}
	features := append([]string(nil), ent.Features...)
	sort.Strings(features)
	limits := make(map[string]int, len(ent.Limits))
	for k, v := range ent.Limits {
		limits[k] = v
	}
	return &dto.EntitlementsResponse{PlanID: plan, Features: features, Limits: limits}, nil
}
