package entity

import "time"

// Estados de un cliente en el CRM.
const (
	CustomerStatusLead     = "lead"
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer representa un cliente de la empresa (CRM y facturación).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	Notes     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
