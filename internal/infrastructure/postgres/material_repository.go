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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo persistencia del inventario de materiales.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, company_id, sku, name, unit, quantity, unit_cost, reorder_level, location, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.MaterialItem, error) {
	var m entity.MaterialItem
	if err := row.Scan(&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.Unit, &m.Quantity, &m.UnitCost,
		&m.ReorderLevel, &m.Location, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un material. SKU duplicado en la empresa → ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.MaterialItem) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO materials (`+materialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.CompanyID, m.SKU, m.Name, m.Unit, m.Quantity, m.UnitCost, m.ReorderLevel, m.Location,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.MaterialItem, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) GetBySKU(ctx context.Context, companyID, sku string) (*entity.MaterialItem, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE company_id = $1 AND sku = $2`, companyID, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material by sku: %w", err)
	}
	return m, nil
}

// ListByCompany lista materiales por nombre; lowStockOnly filtra quantity <= reorder_level.
func (r *MaterialRepo) ListByCompany(ctx context.Context, companyID string, lowStockOnly bool) ([]*entity.MaterialItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials
		WHERE company_id = $1 AND (NOT $2 OR quantity <= reorder_level) ORDER BY name`, companyID, lowStockOnly)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.MaterialItem
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.MaterialItem) error {
	tag, err := r.q.Exec(ctx, `UPDATE materials SET sku = $2, name = $3, unit = $4, quantity = $5,
		unit_cost = $6, reorder_level = $7, location = $8, updated_at = $9 WHERE id = $1`,
		m.ID, m.SKU, m.Name, m.Unit, m.Quantity, m.UnitCost, m.ReorderLevel, m.Location, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity suma delta en una sola sentencia; la condición del WHERE evita existencias negativas.
func (r *MaterialRepo) AdjustQuantity(ctx context.Context, id string, delta decimal.Decimal) (*entity.MaterialItem, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `UPDATE materials
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING `+materialColumns, id, delta))
	if err == nil {
		return m, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("adjust material: %w", err)
	}
	// Sin fila: o no existe o quedaría negativa.
	existing, gerr := r.GetByID(ctx, id)
	if gerr != nil {
		return nil, gerr
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrConflict
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
