package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	SKU          string          `json:"sku" validate:"required,max=50"`
	Name         string          `json:"name" validate:"required,max=200"`
	Unit         string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Location     string          `json:"location,omitempty"`
}

// UpdateMaterialRequest campos opcionales (la existencia se cambia con /adjust).
type UpdateMaterialRequest struct {
	SKU          *string          `json:"sku" validate:"omitempty,max=50"`
	Name         *string          `json:"name" validate:"omitempty,max=200"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	Location     *string          `json:"location"`
}

// AdjustStockRequest body para POST /api/materials/:id/adjust. Delta positivo = entrada.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason,omitempty"`
}

// MaterialResponse material en respuestas.
type MaterialResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Location     string          `json:"location,omitempty"`
	Value        decimal.Decimal `json:"value"`
	LowStock     bool            `json:"low_stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InventoryValueDTO respuesta de GET /api/materials/value.
type InventoryValueDTO struct {
	Items         int             `json:"items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// ImportResultDTO resultado de POST /api/materials/import.
type ImportResultDTO struct {
	Encoding string   `json:"encoding"` // charset detectado del archivo
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors,omitempty"`
}
