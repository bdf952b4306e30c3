package repository

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=subscription_repository.go -destination=mocks/subscription_repository_mock.go -package=mocks

// SubscriptionRepository puerto de persistencia de pagos de suscripción.
type SubscriptionRepository interface {
	Create(ctx context.Context, p *entity.SubscriptionPayment) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPayment, error)
	GetByPreferenceID(ctx context.Context, preferenceID string) (*entity.SubscriptionPayment, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.SubscriptionPayment, error)
	// ClaimPending pasa el pago de pending a status solo si sigue pendiente.
	// Devuelve false si otra notificación ya lo resolvió (o no existe).
	ClaimPending(ctx context.Context, id, status, providerPaymentID string) (bool, error)
}
