// Package estimate: motor de cálculo EasyCalc (área, costo de material, mano de obra,
// margen y recomendación de cantidad de material). Servicio de dominio puro, sin estado.
package estimate

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitMode sistema de unidades de las dimensiones.
type UnitMode string

const (
	UnitSquareFeet   UnitMode = "sqft"
	UnitSquareMeters UnitMode = "sqm"
	UnitLinearFeet   UnitMode = "linear_ft"
)

// MaxAdditionalAreas máximo de áreas adicionales que acepta un cálculo.
const MaxAdditionalAreas = 10

// SurfaceWall tipo de superficie que activa la fórmula de muros.
const SurfaceWall = "Wall"

// Value número tal como llega de un formulario. Vacío o no numérico vale 0.
// Acepta en JSON tanto números como strings.
type Value string

// Decimal convierte el valor; cualquier entrada no numérica devuelve 0.
func (v Value) Decimal() decimal.Decimal {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// UnmarshalJSON nunca falla por el contenido: un valor raro se convierte en 0 al calcular.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*v = ""
			return nil
		}
		*v = Value(s)
		return nil
	}
	*v = Value(b)
	return nil
}

// V atajo para construir un Value desde un float (tests y CLI).
func V(f float64) Value {
	return Value(decimal.NewFromFloat(f).String())
}

// Dimension par (ancho, largo) de un área adicional.
type Dimension struct {
	Width  Value `json:"width"`
	Length Value `json:"length"`
}

// Input entradas del cálculo.
type Input struct {
	Unit            UnitMode    `json:"unit"`
	Width           Value       `json:"width"`
	Length          Value       `json:"length"`
	Height          Value       `json:"height"`
	SurfaceType     string      `json:"surface_type"` // Floor, Wall, Ceiling, Exterior, ...
	Material        string      `json:"material"`
	Industry        string      `json:"industry"` // Flooring, Painting, Tile, ...
	LaborRate       Value       `json:"labor_rate"`
	MarkupPercent   Value       `json:"markup_percent"`
	AdditionalAreas []Dimension `json:"additional_areas,omitempty"`
}

// Result salida del cálculo. Area está en la unidad de visualización (m² si Unit es sqm).
type Result struct {
	Area         decimal.Decimal `json:"area"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	Markup       decimal.Decimal `json:"markup"`
	Total        decimal.Decimal `json:"total"`
	QuantityText string          `json:"material_quantity"`
}

// Rounded devuelve el resultado redondeado a 2 decimales para mostrar.
func (r Result) Rounded() Result {
	return Result{
		Area:         r.Area.Round(2),
		MaterialCost: r.MaterialCost.Round(2),
		LaborCost:    r.LaborCost.Round(2),
		Markup:       r.Markup.Round(2),
		Total:        r.Total.Round(2),
		QuantityText: r.QuantityText,
	}
}
