package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estimate cotización guardada: snapshot de entradas de EasyCalc y resultados calculados.
type Estimate struct {
	ID           string
	CompanyID    string
	CustomerID   string // opcional
	Name         string
	Input        json.RawMessage
	Area         decimal.Decimal
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	Markup       decimal.Decimal
	Total        decimal.Decimal
	QuantityText string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EstimateDraft proyecto en curso de un usuario (uno solo por usuario).
type EstimateDraft struct {
	UserID    string
	CompanyID string
	Name      string
	Input     json.RawMessage
	UpdatedAt time.Time
}
