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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo persistencia de documentos para firma y sus firmas.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, company_id, title, storage_key, content_type, size, fingerprint, status, created_by, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.CompanyID, &d.Title, &d.StorageKey, &d.ContentType, &d.Size,
		&d.Fingerprint, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.CompanyID, d.Title, d.StorageKey, d.ContentType, d.Size, d.Fingerprint, d.Status,
		d.CreatedBy, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Document, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CountByCompany documentos no anulados de la empresa (para el límite del plan).
func (r *DocumentRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE company_id = $1 AND status <> $2`,
		companyID, entity.DocumentStatusVoid).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (r *DocumentRepo) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE documents SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update document status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *DocumentRepo) AddSignature(ctx context.Context, s *entity.Signature) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO signatures
		(id, document_id, signer_name, signer_email, image, ip_address, fingerprint, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.DocumentID, s.SignerName, s.SignerEmail, s.Image, s.IPAddress, s.Fingerprint, s.SignedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert signature: %w", err)
	}
	return nil
}

func (r *DocumentRepo) ListSignatures(ctx context.Context, documentID string) ([]*entity.Signature, error) {
	rows, err := r.q.Query(ctx, `SELECT id, document_id, signer_name, signer_email, image, ip_address, fingerprint, signed_at
		FROM signatures WHERE document_id = $1 ORDER BY signed_at`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	defer rows.Close()

	var list []*entity.Signature
	for rows.Next() {
		var s entity.Signature
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.SignerName, &s.SignerEmail, &s.Image, &s.IPAddress,
			&s.Fingerprint, &s.SignedAt); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
