package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Clientes (CRM) ────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"omitempty,max=30"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=lead active inactive"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	Status  *string `json:"status" validate:"omitempty,oneof=lead active inactive"`
}

// CustomerStatusRequest body para PATCH /api/customers/:id/status.
type CustomerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=lead active inactive"`
}

// CustomerListRequest query de GET /api/customers.
type CustomerListRequest struct {
	PageRequest
	Status string `query:"status"`
	Search string `query:"q"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id" validate:"required,uuid"`
	IssueDate  string               `json:"issue_date,omitempty"` // YYYY-MM-DD; por defecto hoy
	DueDate    string               `json:"due_date,omitempty"`   // YYYY-MM-DD; por defecto +30 días
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest línea de factura.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // fracción: 0.08 = 8%
}

// InvoiceListRequest query de GET /api/invoices.
type InvoiceListRequest struct {
	PageRequest
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
}

// InvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type InvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue void"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CompanyID    string                `json:"company_id"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Number       string                `json:"number"`
	IssueDate    string                `json:"issue_date"`
	DueDate      string                `json:"due_date"`
	Status       string                `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	NetTotal     decimal.Decimal       `json:"net_total"`
	TaxTotal     decimal.Decimal       `json:"tax_total"`
	GrandTotal   decimal.Decimal       `json:"grand_total"`
	AmountPaid   decimal.Decimal       `json:"amount_paid"`
	Items        []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceItemResponse línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// EmailInvoiceRequest body para POST /api/invoices/:id/email.
type EmailInvoiceRequest struct {
	To      string `json:"to" validate:"omitempty,email"` // vacío = email del cliente
	Message string `json:"message,omitempty"`
}

// ── Recibos ───────────────────────────────────────────────────────────────────

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	InvoiceID  string          `json:"invoice_id,omitempty" validate:"omitempty,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"required,oneof=cash card transfer check"`
	Reference  string          `json:"reference,omitempty"`
	ReceivedAt string          `json:"received_at,omitempty"` // YYYY-MM-DD; por defecto hoy
}

// ReceiptResponse recibo en respuestas.
type ReceiptResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	ReceivedAt    time.Time       `json:"received_at"`
	InvoiceStatus string          `json:"invoice_status,omitempty"` // estado de la factura tras el recibo
}
