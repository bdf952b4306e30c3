package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID            string
	Name          string
	TaxID         string
	Address       string
	Phone         string
	Email         string
	Status        string     // active, suspended, inactive
	PlanID        string     // ver config/pricing.json; "free" si no hay suscripción
	PlanExpiresAt *time.Time // nil = sin vencimiento
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PlanFree es el plan al que cae una empresa sin suscripción vigente.
const PlanFree = "free"

// EffectivePlan devuelve el plan vigente en el instante now.
func (c *Company) EffectivePlan(now time.Time) string {
	if c.PlanID == "" {
		return PlanFree
	}
	if c.PlanExpiresAt != nil && now.After(*c.PlanExpiresAt) {
		return PlanFree
	}
	return c.PlanID
}

// Funcionalidades SaaS (deben coincidir con las claves de config/entitlements.json).
const (
	FeatureInvoicing = "invoicing"
	FeatureCRM       = "crm"
	FeatureCrew      = "crew"
	FeatureMatTrack  = "mattrack"
	FeatureBudget    = "budget"
	FeatureESign     = "esign"
	FeatureAnalytics = "analytics"
	FeatureEasyCalc  = "easycalc"
	FeatureExports   = "exports"
)

// Límites por plan.
const (
	LimitMaxEmployees = "max_employees"
	LimitMaxDocuments = "max_documents"
)
