package dto

import "time"

// SecurityEventDTO evento de la bitácora de seguridad.
type SecurityEventDTO struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
