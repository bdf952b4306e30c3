package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo persistencia de partidas presupuestales.
type BudgetRepo struct {
	q Querier
}

func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, company_id, name, period, planned, spent, created_at, updated_at`

func scanBudget(row pgx.Row) (*entity.BudgetCategory, error) {
	var b entity.BudgetCategory
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Period, &b.Planned, &b.Spent, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste una partida. Nombre repetido en el mismo período → ErrDuplicate.
func (r *BudgetRepo) Create(ctx context.Context, b *entity.BudgetCategory) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO budget_categories (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.CompanyID, b.Name, b.Period, b.Planned, b.Spent, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert budget category: %w", err)
	}
	return nil
}

func (r *BudgetRepo) GetByID(ctx context.Context, id string) (*entity.BudgetCategory, error) {
	b, err := scanBudget(r.q.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budget_categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget category: %w", err)
	}
	return b, nil
}

func (r *BudgetRepo) ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.BudgetCategory, error) {
	rows, err := r.q.Query(ctx, `SELECT `+budgetColumns+` FROM budget_categories
		WHERE company_id = $1 AND period = $2 ORDER BY name`, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("list budget categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.BudgetCategory
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget category: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BudgetRepo) Update(ctx context.Context, b *entity.BudgetCategory) error {
	tag, err := r.q.Exec(ctx, `UPDATE budget_categories SET name = $2, planned = $3, updated_at = $4 WHERE id = $1`,
		b.ID, b.Name, b.Planned, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update budget category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSpent acumula gasto de forma atómica y devuelve la partida actualizada.
func (r *BudgetRepo) AddSpent(ctx context.Context, id string, amount decimal.Decimal) (*entity.BudgetCategory, error) {
	b, err := scanBudget(r.q.QueryRow(ctx, `UPDATE budget_categories SET spent = spent + $2, updated_at = NOW()
		WHERE id = $1 RETURNING `+budgetColumns, id, amount))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add budget spent: %w", err)
	}
	return b, nil
}

func (r *BudgetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM budget_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
