package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

// SaveEstimateRequest body para POST /api/estimates.
type SaveEstimateRequest struct {
	Name       string         `json:"name" validate:"required,max=200"`
	CustomerID string         `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Input      estimate.Input `json:"input"`
}

// EstimateResponse cotización guardada.
type EstimateResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CustomerID string          `json:"customer_id,omitempty"`
	Input      json.RawMessage `json:"input"`
	Result     estimate.Result `json:"result"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DraftRequest body para PUT /api/estimates/draft.
type DraftRequest struct {
	Name  string          `json:"name" validate:"max=200"`
	Input json.RawMessage `json:"input"`
}

// DraftResponse proyecto en curso del usuario.
type DraftResponse struct {
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProjectFile formato del archivo de proyecto exportado/importado.
type ProjectFile struct {
	Version    int             `json:"version"`
	Name       string          `json:"name"`
	ExportedAt time.Time       `json:"exported_at"`
	Input      estimate.Input  `json:"input"`
	Result     estimate.Result `json:"result"`
}
