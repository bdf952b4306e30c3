package entity

import "time"

// Estados de un documento para firma electrónica.
const (
	DocumentStatusPending = "pending"
	DocumentStatusSigned  = "signed"
	DocumentStatusVoid    = "void"
)

// Document archivo subido para firma; el contenido vive en el almacenamiento de objetos.
type Document struct {
	ID          string
	CompanyID   string
	Title       string
	StorageKey  string
	ContentType string
	Size        int64
	Fingerprint string // SHA-384 hex del contenido al subirlo
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Signature firma capturada sobre un documento.
type Signature struct {
	ID          string
	DocumentID  string
	SignerName  string
	SignerEmail string
	Image       string // PNG en base64 (data URL sin prefijo)
	IPAddress   string
	Fingerprint string // SHA-384 del documento en el momento de firmar
	SignedAt    time.Time
}
