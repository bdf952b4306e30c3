package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// DefaultDueDays plazo de vencimiento cuando la factura no trae due_date.
const DefaultDueDays = 30

// InvoiceUseCase casos de uso de facturas.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	receiptRepo  repository.ReceiptRepository
	customerRepo repository.CustomerRepository
	txRunner     BillingTxRunner
	sanitizer    ports.Sanitizer
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	receiptRepo repository.ReceiptRepository,
	customerRepo repository.CustomerRepository,
	txRunner BillingTxRunner,
	sanitizer ports.Sanitizer,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		receiptRepo:  receiptRepo,
		customerRepo: customerRepo,
		txRunner:     txRunner,
		sanitizer:    sanitizer,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Totals totales de una factura calculados desde sus líneas.
type Totals struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Grand decimal.Decimal
}

// ComputeTotals calcula subtotal por línea, neto, impuesto y total. Redondeo a 2 decimales por línea.
func ComputeTotals(items []*entity.InvoiceItem) Totals {
	var t Totals
	for _, it := range items {
		it.Subtotal = it.Quantity.Mul(it.UnitPrice).Round(2)
		t.Net = t.Net.Add(it.Subtotal)
		t.Tax = t.Tax.Add(it.Subtotal.Mul(it.TaxRate).Round(2))
	}
	t.Grand = t.Net.Add(t.Tax)
	return t
}

// Create crea la factura en borrador con sus líneas en una sola transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura requiere al menos una línea", domain.ErrInvalidInput)
	}

	// ── 1. Validar cliente ──
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// ── 2. Fechas ──
	issue := uc.now().UTC().Truncate(24 * time.Hour)
	if in.IssueDate != "" {
		if issue, err = time.Parse(dto.DateLayout, in.IssueDate); err != nil {
			return nil, fmt.Errorf("%w: issue_date inválida", domain.ErrInvalidInput)
		}
	}
	due := issue.AddDate(0, 0, DefaultDueDays)
	if in.DueDate != "" {
		if due, err = time.Parse(dto.DateLayout, in.DueDate); err != nil {
			return nil, fmt.Errorf("%w: due_date inválida", domain.ErrInvalidInput)
		}
	}
	if due.Before(issue) {
		return nil, fmt.Errorf("%w: due_date anterior a issue_date", domain.ErrInvalidInput)
	}

	// ── 3. Líneas y totales ──
	invoiceID := uuid.New().String()
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		desc := uc.sanitizer.Text(it.Description)
		if desc == "" || !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() ||
			it.TaxRate.IsNegative() || it.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: línea %d inválida", domain.ErrInvalidInput, i+1)
		}
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	totals := ComputeTotals(items)

	now := uc.now()
	inv := &entity.Invoice{
		ID:         invoiceID,
		CompanyID:  companyID,
		CustomerID: customer.ID,
		IssueDate:  issue,
		DueDate:    due,
		Status:     entity.InvoiceStatusDraft,
		Notes:      uc.sanitizer.RichText(in.Notes),
		NetTotal:   totals.Net,
		TaxTotal:   totals.Tax,
		GrandTotal: totals.Grand,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// ── 4. Persistir (todo o nada) ──
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.ReceiptRepository) error {
		number, err := invoiceRepo.NextNumber(ctx, companyID)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, it := range items {
			if err := invoiceRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, customer, items, decimal.Zero), nil
}

// GetByID devuelve la factura con líneas y monto pagado.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	paid, err := uc.receiptRepo.SumByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, customer, items, paid), nil
}

// List lista facturas de la empresa (sin líneas).
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, in dto.InvoiceListRequest) ([]dto.InvoiceResponse, error) {
	in.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, companyID, repository.InvoiceFilter{
		Status:     in.Status,
		CustomerID: in.CustomerID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		paid, err := uc.receiptRepo.SumByInvoice(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *ToInvoiceResponse(inv, nil, nil, paid))
	}
	return out, nil
}

// UpdateStatus aplica una transición de estado válida; las demás devuelven domain.ErrConflict.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.InvoiceResponse, error) {
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == status {
		return ToInvoiceResponse(inv, nil, nil, decimal.Zero), nil
	}
	if !entity.CanTransitionInvoice(inv.Status, status) {
		return nil, fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, inv.Status, status)
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, status); err != nil {
		return nil, err
	}
	inv.Status = status
	return ToInvoiceResponse(inv, nil, nil, decimal.Zero), nil
}

// Delete elimina una factura; solo se permite en borrador.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.InvoiceStatusDraft {
		return fmt.Errorf("%w: solo se eliminan facturas en borrador", domain.ErrConflict)
	}
	return uc.invoiceRepo.Delete(ctx, inv.ID)
}

func (uc *InvoiceUseCase) owned(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// ToInvoiceResponse convierte la factura a DTO. customer e items pueden ser nil.
func ToInvoiceResponse(inv *entity.Invoice, customer *entity.Customer, items []*entity.InvoiceItem, paid decimal.Decimal) *dto.InvoiceResponse {
	res := &dto.InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		CustomerID: inv.CustomerID,
		Number:     inv.Number,
		IssueDate:  inv.IssueDate.Format(dto.DateLayout),
		DueDate:    inv.DueDate.Format(dto.DateLayout),
		Status:     inv.Status,
		Notes:      inv.Notes,
		NetTotal:   inv.NetTotal,
		TaxTotal:   inv.TaxTotal,
		GrandTotal: inv.GrandTotal,
		AmountPaid: paid,
	}
	if customer != nil {
		res.CustomerName = customer.Name
	}
	for _, it := range items {
		res.Items = append(res.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return res
}
