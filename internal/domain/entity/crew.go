package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un empleado.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// Employee miembro de la cuadrilla (módulo Crew).
type Employee struct {
	ID         string
	CompanyID  string
	Name       string
	Role       string // oficio: carpintero, pintor, ...
	Email      string
	Phone      string
	HourlyRate decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TimeEntry horas trabajadas por un empleado en un día.
type TimeEntry struct {
	ID         string
	CompanyID  string
	EmployeeID string
	WorkDate   time.Time
	Hours      decimal.Decimal
	JobRef     string
	Notes      string
	CreatedAt  time.Time
}
