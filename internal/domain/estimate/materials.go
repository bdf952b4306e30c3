package estimate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultUnitCost costo por unidad de área para materiales no reconocidos.
var defaultUnitCost = decimal.RequireFromString("3.00")

// unitCosts costo base por pie² (o equivalente) de cada material.
var unitCosts = map[string]decimal.Decimal{
	"Vinyl":            decimal.RequireFromString("3.50"),
	"Hardwood":         decimal.RequireFromString("8.00"),
	"Tile":             decimal.RequireFromString("5.50"),
	"Paint (Interior)": decimal.RequireFromString("1.50"),
	"Paint (Exterior)": decimal.RequireFromString("2.00"),
	"Laminate":         decimal.RequireFromString("4.50"),
	"Carpet":           decimal.RequireFromString("3.00"),
	"Drywall":          decimal.RequireFromString("1.80"),
	"Lumber":           decimal.RequireFromString("4.00"),
	"Concrete":         decimal.RequireFromString("6.00"),
}

// adjustment multiplicador para una combinación (industria, superficie).
type adjustment struct {
	industry string
	surface  string
	factor   decimal.Decimal
}

var adjustments = []adjustment{
	{industry: "Flooring", surface: "Floor", factor: decimal.RequireFromString("1.1")},
	{industry: "Painting", surface: "Exterior", factor: decimal.RequireFromString("1.3")},
	{industry: "Tile", surface: "Wall", factor: decimal.RequireFromString("1.2")},
}

// UnitCost costo por unidad de área del material ya ajustado por industria y superficie.
func UnitCost(material, industry, surface string) decimal.Decimal {
	cost, ok := unitCosts[material]
	if !ok {
		cost = defaultUnitCost
	}
	for _, a := range adjustments {
		if strings.EqualFold(a.industry, industry) && strings.EqualFold(a.surface, surface) {
			cost = cost.Mul(a.factor)
		}
	}
	return cost
}

// MaterialPrice entrada del catálogo de materiales.
type MaterialPrice struct {
	Name     string          `json:"name"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// Materials lista el catálogo ordenado por nombre.
func Materials() []MaterialPrice {
	out := make([]MaterialPrice, 0, len(unitCosts))
	for name, cost := range unitCosts {
		out = append(out, MaterialPrice{Name: name, UnitCost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
