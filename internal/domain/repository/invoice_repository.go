package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

//go:generate mockgen -source=invoice_repository.go -destination=mocks/invoice_repository_mock.go -package=mocks

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, companyID string, f InvoiceFilter) ([]*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// NextNumber devuelve el siguiente consecutivo de la empresa (ej. "INV-000042").
	NextNumber(ctx context.Context, companyID string) (string, error)
	Delete(ctx context.Context, id string) error
}

// ReceiptRepository puerto de persistencia de recibos de pago.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Receipt, error)
	// SumByInvoice total recibido para una factura.
	SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
