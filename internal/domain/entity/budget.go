package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory partida presupuestal de un período (ej. "2026-10").
type BudgetCategory struct {
	ID        string
	CompanyID string
	Name      string
	Period    string // YYYY-MM
	Planned   decimal.Decimal
	Spent     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
