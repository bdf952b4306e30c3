package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago de suscripción.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// SubscriptionPayment intento de checkout de un plan.
type SubscriptionPayment struct {
	ID                string
	CompanyID         string
	PlanID            string
	Amount            decimal.Decimal
	Currency          string
	PreferenceID      string // id de la preferencia de checkout del proveedor
	ProviderPaymentID string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
