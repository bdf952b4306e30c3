// Package ports define los puertos de salida hacia servicios externos (almacenamiento de
// objetos, correo, pasarela de pagos). La aplicación solo conoce estos contratos; los
// adaptadores concretos viven en infrastructure.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// Sanitizer limpia texto libre antes de guardarlo.
type Sanitizer interface {
	// Text elimina todo el marcado y esquemas peligrosos; devuelve texto plano.
	Text(s string) string
	// RichText conserva formato básico seguro (notas).
	RichText(s string) string
}

// ObjectStorage almacén de archivos binarios (documentos para firma).
type ObjectStorage interface {
	// Put guarda el contenido y devuelve el content type detectado.
	Put(ctx context.Context, key string, data []byte) (contentType string, err error)
	// Get devuelve un lector que el caller debe cerrar. domain.ErrNotFound si no existe.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Attachment adjunto de un correo.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email mensaje saliente.
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer envía correos. Si SMTP no está configurado devuelve domain.ErrMailDisabled.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// CheckoutItem línea cobrada en un checkout.
type CheckoutItem struct {
	ID        string
	Title     string
	UnitPrice decimal.Decimal
	Currency  string
}

// CheckoutRequest datos para crear la preferencia de pago.
type CheckoutRequest struct {
	ExternalReference string // id del pago de suscripción local
	PayerEmail        string
	Item              CheckoutItem
}

// CheckoutSession resultado de crear la preferencia.
type CheckoutSession struct {
	PreferenceID string
	RedirectURL  string
}

// PaymentInfo estado de un pago consultado al proveedor.
type PaymentInfo struct {
	ID                string
	Status            string // approved, pending, rejected, ...
	ExternalReference string
	Amount            decimal.Decimal
	ApprovedAt        *time.Time
}

// PaymentGateway pasarela de pagos (checkout por redirección).
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error)
}
