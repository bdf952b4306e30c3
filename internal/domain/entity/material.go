package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialItem artículo de inventario de materiales (MatTrack).
type MaterialItem struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	Unit         string // sq ft, gal, pcs, ...
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	ReorderLevel decimal.Decimal
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock informa si la existencia está en o por debajo del punto de reorden.
func (m *MaterialItem) LowStock() bool {
	return m.Quantity.LessThanOrEqual(m.ReorderLevel)
}

// Value valor del inventario del artículo (cantidad × costo unitario).
func (m *MaterialItem) Value() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}
