package dto

import "time"

// SignDocumentRequest body para POST /api/documents/:id/sign.
type SignDocumentRequest struct {
	SignerName  string `json:"signer_name" validate:"required,max=200"`
	SignerEmail string `json:"signer_email" validate:"omitempty,email"`
	Image       string `json:"image" validate:"required"` // PNG base64 o data URL
}

// SignatureResponse firma en respuestas (sin la imagen).
type SignatureResponse struct {
	ID          string    `json:"id"`
	SignerName  string    `json:"signer_name"`
	SignerEmail string    `json:"signer_email,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	SignedAt    time.Time `json:"signed_at"`
}

// DocumentResponse documento con sus firmas.
type DocumentResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	ContentType string              `json:"content_type"`
	Size        int64               `json:"size"`
	Fingerprint string              `json:"fingerprint"`
	Status      string              `json:"status"`
	CreatedBy   string              `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	Signatures  []SignatureResponse `json:"signatures,omitempty"`
}
