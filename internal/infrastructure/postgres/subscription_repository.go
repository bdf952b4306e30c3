package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo persistencia de pagos de suscripción.
type SubscriptionRepo struct {
	q Querier
}

func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, company_id, plan_id, amount, currency, preference_id, provider_payment_id, status, created_at, updated_at`

func scanSubscription(row pgx.Row) (*entity.SubscriptionPayment, error) {
	var p entity.SubscriptionPayment
	if err := row.Scan(&p.ID, &p.CompanyID, &p.PlanID, &p.Amount, &p.Currency, &p.PreferenceID,
		&p.ProviderPaymentID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SubscriptionRepo) Create(ctx context.Context, p *entity.SubscriptionPayment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO subscription_payments (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.CompanyID, p.PlanID, p.Amount, p.Currency, p.PreferenceID, p.ProviderPaymentID, p.Status,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription payment: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPayment, error) {
	return r.findOne(ctx, `SELECT `+subscriptionColumns+` FROM subscription_payments WHERE id = $1`, id)
}

func (r *SubscriptionRepo) GetByPreferenceID(ctx context.Context, preferenceID string) (*entity.SubscriptionPayment, error) {
	return r.findOne(ctx, `SELECT `+subscriptionColumns+` FROM subscription_payments WHERE preference_id = $1`, preferenceID)
}

func (r *SubscriptionRepo) findOne(ctx context.Context, query string, arg string) (*entity.SubscriptionPayment, error) {
	p, err := scanSubscription(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription payment: %w", err)
	}
	return p, nil
}

func (r *SubscriptionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SubscriptionPayment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+subscriptionColumns+` FROM subscription_payments
		WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list subscription payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubscriptionPayment
	for rows.Next() {
		p, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ClaimPending actualización condicional: dos notificaciones concurrentes del mismo pago
// compiten por la fila y solo una ve RowsAffected == 1.
func (r *SubscriptionRepo) ClaimPending(ctx context.Context, id, status, providerPaymentID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE subscription_payments
		SET status = $2, provider_payment_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4`, id, status, providerPaymentID, entity.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("claim subscription payment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
