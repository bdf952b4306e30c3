package billing

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// PDFUseCase genera el PDF de una factura y lo envía por correo.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
	mailer       ports.Mailer
	sanitizer    ports.Sanitizer
	baseURL      string
	log          *logger.Logger
}

// NewPDFUseCase construye el caso de uso. baseURL vacío omite el QR de pago.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
	mailer ports.Mailer,
	sanitizer ports.Sanitizer,
	baseURL string,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
		mailer:       mailer,
		sanitizer:    sanitizer,
		baseURL:      strings.TrimRight(baseURL, "/"),
		log:          log.Component("invoice_pdf"),
	}
}

// PaymentLink link público de pago de la factura; vacío si no aplica.
func (uc *PDFUseCase) PaymentLink(inv *entity.Invoice) string {
	if uc.baseURL == "" {
		return ""
	}
	switch inv.Status {
	case entity.InvoiceStatusSent, entity.InvoiceStatusOverdue:
		return fmt.Sprintf("%s/pay/%s", uc.baseURL, inv.ID)
	}
	return ""
}

// DownloadInvoicePDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	data, inv, _, err := uc.render(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	return data, invoiceFilename(inv), nil
}

// EmailInvoice envía el PDF al cliente (o al destinatario indicado).
// Una factura en borrador pasa a enviada tras el envío.
func (uc *PDFUseCase) EmailInvoice(ctx context.Context, companyID, invoiceID string, in dto.EmailInvoiceRequest) error {
	data, inv, customer, err := uc.render(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	to := strings.TrimSpace(in.To)
	if to == "" {
		to = customer.Email
	}
	if to == "" {
		return fmt.Errorf("%w: el cliente no tiene email", domain.ErrInvalidInput)
	}

	body := fmt.Sprintf("<p>Invoice <strong>%s</strong> for %s.</p>",
		html.EscapeString(inv.Number), inv.GrandTotal.StringFixed(2))
	if msg := uc.sanitizer.RichText(in.Message); msg != "" {
		body = "<p>" + msg + "</p>" + body
	}
	if link := uc.PaymentLink(inv); link != "" {
		body += fmt.Sprintf(`<p><a href="%s">Pay online</a></p>`, html.EscapeString(link))
	}

	err = uc.mailer.Send(ctx, ports.Email{
		To:       []string{to},
		Subject:  "Invoice " + inv.Number,
		HTMLBody: body,
		Attachments: []ports.Attachment{{
			Filename:    invoiceFilename(inv),
			ContentType: "application/pdf",
			Data:        data,
		}},
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("to", to).Msg("factura enviada por correo")

	if inv.Status == entity.InvoiceStatusDraft {
		if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusSent); err != nil {
			return fmt.Errorf("email: marcar enviada: %w", err)
		}
	}
	return nil
}

func (uc *PDFUseCase) render(ctx context.Context, companyID, invoiceID string) ([]byte, *entity.Invoice, *entity.Customer, error) {
	// ── 1. Cargar factura ──
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, nil, nil, domain.ErrForbidden
	}

	// ── 2. Empresa y cliente ──
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, nil, nil, domain.ErrNotFound
	}

	// ── 3. Líneas ──
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	// ── 4. Generar ──
	data, err := uc.generator.GenerateInvoicePDF(ctx, inv, company, customer, items, uc.PaymentLink(inv))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pdf: generar: %w", err)
	}
	return data, inv, customer, nil
}

func invoiceFilename(inv *entity.Invoice) string {
	return fmt.Sprintf("invoice-%s.pdf", inv.Number)
}
