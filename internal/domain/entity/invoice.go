package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusVoid    = "void"
)

// invoiceTransitions transiciones de estado permitidas. paid y void son terminales.
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusVoid},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid},
	InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusVoid},
}

// CanTransitionInvoice informa si la factura puede pasar de from a to.
func CanTransitionInvoice(from, to string) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	Number     string
	IssueDate  time.Time
	DueDate    time.Time
	Status     string
	Notes      string
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem línea de una factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // fracción: 0.19 = 19%
	Subtotal    decimal.Decimal // Quantity * UnitPrice (sin impuesto)
}

// Receipt registra un pago recibido, opcionalmente asociado a una factura.
type Receipt struct {
	ID         string
	CompanyID  string
	InvoiceID  string // vacío = ingreso sin factura
	Amount     decimal.Decimal
	Method     string // cash, card, transfer, check
	Reference  string
	ReceivedAt time.Time
	CreatedAt  time.Time
}
