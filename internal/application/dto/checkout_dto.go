package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanDTO plan publicado en pricing.json.
type PlanDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Interval string          `json:"interval"` // month, year
	Features []string        `json:"features"`
}

// CheckoutRequest body para POST /api/billing/checkout.
type CheckoutRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// CheckoutResponse URL de redirección al checkout del proveedor.
type CheckoutResponse struct {
	PaymentID    string `json:"payment_id"`
	PreferenceID string `json:"preference_id"`
	RedirectURL  string `json:"redirect_url"`
}

// NotificationRequest webhook del proveedor de pagos.
type NotificationRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ReconcileIssueDTO diferencia entre pricing.json y el mapa de precios del proveedor.
type ReconcileIssueDTO struct {
	PlanID   string `json:"plan_id"`
	Kind     string `json:"kind"` // missing, amount, currency, orphan
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// ReconcileReportDTO resultado de la sincronización de precios.
type ReconcileReportDTO struct {
	CheckedAt time.Time           `json:"checked_at"`
	Plans     int                 `json:"plans"`
	Issues    []ReconcileIssueDTO `json:"issues"`
}

// OK indica que no hay diferencias.
func (r ReconcileReportDTO) OK() bool { return len(r.Issues) == 0 }

// SubscriptionPaymentResponse intento de checkout.
type SubscriptionPaymentResponse struct {
	ID        string          `json:"id"`
	PlanID    string          `json:"plan_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
