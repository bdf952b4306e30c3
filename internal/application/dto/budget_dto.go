package dto

import "github.com/shopspring/decimal"

// CreateBudgetCategoryRequest body para POST /api/budget/categories.
type CreateBudgetCategoryRequest struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Period  string          `json:"period" validate:"required,len=7"` // YYYY-MM
	Planned decimal.Decimal `json:"planned"`
}

// UpdateBudgetCategoryRequest campos opcionales.
type UpdateBudgetCategoryRequest struct {
	Name    *string          `json:"name" validate:"omitempty,max=100"`
	Planned *decimal.Decimal `json:"planned"`
}

// RecordSpendRequest body para POST /api/budget/categories/:id/spend.
type RecordSpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// BudgetCategoryResponse partida con su avance.
type BudgetCategoryResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Period    string          `json:"period"`
	Planned   decimal.Decimal `json:"planned"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  decimal.Decimal `json:"progress"` // % gastado, 0-100
	OverSpent bool            `json:"over_spent"`
}

// BudgetSummaryDTO respuesta de GET /api/budget/summary.
type BudgetSummaryDTO struct {
	Period      string                   `json:"period"`
	Categories  []BudgetCategoryResponse `json:"categories"`
	Planned     decimal.Decimal          `json:"planned"`
	Spent       decimal.Decimal          `json:"spent"`
	Utilization decimal.Decimal          `json:"utilization"` // % 0-100
}
