package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Obrix-api/internal/application/billing"
	"github.com/jhoicas/Obrix-api/internal/application/checkout"
	"github.com/jhoicas/Obrix-api/internal/application/esign"
	"github.com/jhoicas/Obrix-api/internal/application/inventory"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// Ensure TxRunner implements the transactional ports of each use case.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)
var _ esign.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con el repo de materiales atado a la tx (importación CSV: todo o nada).
func (r *TxRunner) Run(ctx context.Context, fn func(materialRepo repository.MaterialRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialRepository(tx))
	})
}

// RunBilling ejecuta fn con repos de facturación atados a la misma tx
// (crear factura con sus líneas; registrar recibo y marcar pagada).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx), NewReceiptRepository(tx))
	})
}

// RunCheckout ejecuta fn con pagos de suscripción y empresas en la misma tx
// (reclamar el pago aprobado y extender el plan).
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	subs repository.SubscriptionRepository,
	companies repository.CompanyRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewSubscriptionRepository(tx), NewCompanyRepository(tx))
	})
}

// RunDocuments ejecuta fn con el repo de documentos atado a la tx (cambio de estado y firma juntos).
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(documentRepo repository.DocumentRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx))
	})
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
