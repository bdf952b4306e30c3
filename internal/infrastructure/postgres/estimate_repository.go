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

var _ repository.EstimateRepository = (*EstimateRepo)(nil)

// EstimateRepo persistencia de cotizaciones guardadas. El input se guarda como JSONB.
type EstimateRepo struct {
	q Querier
}

func NewEstimateRepository(q Querier) *EstimateRepo {
	return &EstimateRepo{q: q}
}

const estimateColumns = `id, company_id, customer_id, name, input, area, material_cost, labor_cost, markup, total,
	quantity_text, created_by, created_at, updated_at`

func scanEstimate(row pgx.Row) (*entity.Estimate, error) {
	var e entity.Estimate
	var customerID *string
	var input []byte
	if err := row.Scan(&e.ID, &e.CompanyID, &customerID, &e.Name, &input, &e.Area, &e.MaterialCost,
		&e.LaborCost, &e.Markup, &e.Total, &e.QuantityText, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.CustomerID = stringOrEmpty(customerID)
	e.Input = input
	return &e, nil
}

func (r *EstimateRepo) Create(ctx context.Context, e *entity.Estimate) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO estimates (`+estimateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.CompanyID, nullIfEmpty(e.CustomerID), e.Name, []byte(e.Input), e.Area, e.MaterialCost,
		e.LaborCost, e.Markup, e.Total, e.QuantityText, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

func (r *EstimateRepo) GetByID(ctx context.Context, id string) (*entity.Estimate, error) {
	e, err := scanEstimate(r.q.QueryRow(ctx, `SELECT `+estimateColumns+` FROM estimates WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estimate: %w", err)
	}
	return e, nil
}

func (r *EstimateRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Estimate, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+estimateColumns+` FROM estimates WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EstimateRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
