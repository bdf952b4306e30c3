package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest body para POST /api/crew/employees.
type CreateEmployeeRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Role       string          `json:"role,omitempty" validate:"omitempty,max=100"`
	Email      string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string          `json:"phone,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// UpdateEmployeeRequest campos opcionales de un empleado.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Role       *string          `json:"role" validate:"omitempty,max=100"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Phone      *string          `json:"phone"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Status     *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// EmployeeResponse empleado en respuestas.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role,omitempty"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateTimeEntryRequest body para POST /api/crew/time-entries.
type CreateTimeEntryRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,uuid"`
	WorkDate   string          `json:"work_date" validate:"required"` // YYYY-MM-DD
	Hours      decimal.Decimal `json:"hours"`
	JobRef     string          `json:"job_ref,omitempty" validate:"omitempty,max=100"`
	Notes      string          `json:"notes,omitempty"`
}

// PeriodRequest rango de fechas [from, to] inclusive, YYYY-MM-DD.
type PeriodRequest struct {
	From       string `query:"from"`
	To         string `query:"to"`
	EmployeeID string `query:"employee_id"`
}

// TimeEntryResponse registro de horas en respuestas.
type TimeEntryResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	WorkDate   string          `json:"work_date"`
	Hours      decimal.Decimal `json:"hours"`
	JobRef     string          `json:"job_ref,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// PayrollLineDTO línea de nómina por empleado.
type PayrollLineDTO struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
}

// PayrollSummaryDTO respuesta de GET /api/crew/payroll.
type PayrollSummaryDTO struct {
	From          string           `json:"from"`
	To            string           `json:"to"`
	Lines         []PayrollLineDTO `json:"lines"`
	TotalHours    decimal.Decimal  `json:"total_hours"`
	TotalOvertime decimal.Decimal  `json:"total_overtime"`
	TotalGross    decimal.Decimal  `json:"total_gross"`
}
