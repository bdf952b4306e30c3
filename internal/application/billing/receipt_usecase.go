package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// ReceiptUseCase registro de pagos recibidos.
type ReceiptUseCase struct {
	receiptRepo repository.ReceiptRepository
	invoiceRepo repository.InvoiceRepository
	txRunner    BillingTxRunner
	sanitizer   ports.Sanitizer
	now         func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	receiptRepo repository.ReceiptRepository,
	invoiceRepo repository.InvoiceRepository,
	txRunner BillingTxRunner,
	sanitizer ports.Sanitizer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo: receiptRepo,
		invoiceRepo: invoiceRepo,
		txRunner:    txRunner,
		sanitizer:   sanitizer,
		now:         time.Now,
	}
}

// Create registra el recibo. Si va asociado a una factura y lo recibido cubre el total,
// la factura queda pagada en la misma transacción.
func (uc *ReceiptUseCase) Create(ctx context.Context, companyID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	receivedAt := uc.now()
	if in.ReceivedAt != "" {
		t, err := time.Parse(dto.DateLayout, in.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: received_at inválida", domain.ErrInvalidInput)
		}
		receivedAt = t
	}
	receipt := &entity.Receipt{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		InvoiceID:  strings.TrimSpace(in.InvoiceID),
		Amount:     in.Amount.Round(2),
		Method:     in.Method,
		Reference:  uc.sanitizer.Text(in.Reference),
		ReceivedAt: receivedAt,
		CreatedAt:  uc.now(),
	}

	var invoiceStatus string
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, receiptRepo repository.ReceiptRepository) error {
		var inv *entity.Invoice
		if receipt.InvoiceID != "" {
			var err error
			inv, err = invoiceRepo.GetByID(ctx, receipt.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			if inv.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if inv.Status == entity.InvoiceStatusPaid || inv.Status == entity.InvoiceStatusVoid {
				return fmt.Errorf("%w: la factura está %s", domain.ErrConflict, inv.Status)
			}
		}
		if err := receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}
		if inv == nil {
			return nil
		}
		invoiceStatus = inv.Status
		paid, err := receiptRepo.SumByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if paid.GreaterThanOrEqual(inv.GrandTotal) {
			if err := invoiceRepo.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusPaid); err != nil {
				return err
			}
			invoiceStatus = entity.InvoiceStatusPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res := ToReceiptResponse(receipt)
	res.InvoiceStatus = invoiceStatus
	return res, nil
}

// List lista los recibos de la empresa.
func (uc *ReceiptUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ReceiptResponse, error) {
	page.DefaultPage()
	list, err := uc.receiptRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToReceiptResponse(r))
	}
	return out, nil
}

// Delete elimina un recibo. Los recibos de una factura pagada no se pueden eliminar.
func (uc *ReceiptUseCase) Delete(ctx context.Context, companyID, id string) error {
	r, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if r.InvoiceID != "" {
		inv, err := uc.invoiceRepo.GetByID(ctx, r.InvoiceID)
		if err != nil {
			return err
		}
		if inv != nil && inv.Status == entity.InvoiceStatusPaid {
			return fmt.Errorf("%w: la factura ya está pagada", domain.ErrConflict)
		}
	}
	return uc.receiptRepo.Delete(ctx, id)
}

// ToReceiptResponse convierte el recibo a DTO.
func ToReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:         r.ID,
		InvoiceID:  r.InvoiceID,
		Amount:     r.Amount,
		Method:     r.Method,
		Reference:  r.Reference,
		ReceivedAt: r.ReceivedAt,
	}
}
