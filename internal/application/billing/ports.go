package billing

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturas y recibos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}

// InvoicePDFGenerator puerto de salida para generar la representación PDF de una factura.
// paymentLink vacío omite el QR de pago.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		items []*entity.InvoiceItem,
		paymentLink string,
	) ([]byte, error)
}
