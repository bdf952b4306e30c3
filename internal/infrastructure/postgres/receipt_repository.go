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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, company_id, invoice_id, amount, method, reference, received_at, created_at`

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rc entity.Receipt
	var invoiceID *string
	if err := row.Scan(&rc.ID, &rc.CompanyID, &invoiceID, &rc.Amount, &rc.Method, &rc.Reference,
		&rc.ReceivedAt, &rc.CreatedAt); err != nil {
		return nil, err
	}
	rc.InvoiceID = stringOrEmpty(invoiceID)
	return &rc, nil
}

// Create persiste un recibo. InvoiceID vacío se guarda como NULL.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.CompanyID, nullIfEmpty(rc.InvoiceID), rc.Amount, rc.Method, rc.Reference, rc.ReceivedAt, rc.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un recibo.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	rc, err := scanReceipt(r.q.QueryRow(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rc, nil
}

// ListByCompany lista recibos, más recientes primero.
func (r *ReceiptRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Receipt, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE company_id = $1
		ORDER BY received_at DESC LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

// SumByInvoice total recibido para una factura (0 si no hay recibos).
func (r *ReceiptRepo) SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM receipts WHERE invoice_id = $1`, invoiceID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum receipts: %w", err)
	}
	return total, nil
}

// Delete elimina un recibo.
func (r *ReceiptRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
