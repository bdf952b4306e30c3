package estimate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// SquareMetersToFeet factor de conversión m² → pie².
	SquareMetersToFeet = decimal.RequireFromString("10.764")

	hundred       = decimal.NewFromInt(100)
	wasteFactor   = decimal.RequireFromString("1.1") // 10% de desperdicio
	paintCoverage = decimal.NewFromInt(350)          // pie² por galón
	drywallSheet  = decimal.NewFromInt(32)           // lámina 4x8
)

// Calculate ejecuta el cálculo completo. Nunca falla: entradas vacías producen ceros.
//
//	area     = Σ medida(dimensión)              (×10.764 si Unit = sqm)
//	material = area × UnitCost(material, industria, superficie)
//	labor    = area × laborRate / 100
//	markup   = (material + labor) × markup% / 100
//	total    = material + labor + markup
func Calculate(in Input) Result {
	internal := TotalArea(in)
	if in.Unit == UnitSquareMeters {
		internal = internal.Mul(SquareMetersToFeet)
	}

	materialCost := internal.Mul(UnitCost(in.Material, in.Industry, in.SurfaceType))
	laborCost := internal.Mul(in.LaborRate.Decimal().Div(hundred))
	markup := materialCost.Add(laborCost).Mul(in.MarkupPercent.Decimal().Div(hundred))

	display := internal
	if in.Unit == UnitSquareMeters {
		display = internal.Div(SquareMetersToFeet)
	}

	return Result{
		Area:         display,
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		Markup:       markup,
		Total:        materialCost.Add(laborCost).Add(markup),
		QuantityText: QuantityText(in.Material, internal),
	}
}

// TotalArea suma el área principal y las adicionales en la unidad de entrada.
// Las áreas adicionales usan la misma regla muro/plano y la altura común.
func TotalArea(in Input) decimal.Decimal {
	wall := strings.EqualFold(in.SurfaceType, SurfaceWall)
	height := in.Height.Decimal()

	total := measure(in.Unit, wall, in.Width.Decimal(), in.Length.Decimal(), height)
	for _, d := range in.AdditionalAreas {
		total = total.Add(measure(in.Unit, wall, d.Width.Decimal(), d.Length.Decimal(), height))
	}
	return total
}

// measure área de un par de dimensiones.
// En muros los dos lados son segmentos con la altura común: (w×h)+(l×h).
// En pies lineales solo cuenta el largo.
func measure(unit UnitMode, wall bool, width, length, height decimal.Decimal) decimal.Decimal {
	if unit == UnitLinearFeet {
		if wall {
			return length.Mul(height)
		}
		return length
	}
	if wall {
		return width.Mul(height).Add(length.Mul(height))
	}
	return width.Mul(length)
}

// QuantityText recomendación de compra con 10% de desperdicio sobre el área en pie².
func QuantityText(material string, area decimal.Decimal) string {
	switch {
	case strings.Contains(strings.ToLower(material), "paint"):
		n := area.Div(paintCoverage).Mul(wasteFactor).Ceil().IntPart()
		if n == 1 {
			return "1 gallon of paint"
		}
		return fmt.Sprintf("%d gallons of paint", n)
	case material == "Tile" || material == "Vinyl" || material == "Laminate":
		return fmt.Sprintf("%d sq ft of %s", area.Mul(wasteFactor).Ceil().IntPart(), strings.ToLower(material))
	case material == "Drywall":
		return fmt.Sprintf("%d sheets of 4x8 drywall", area.Div(drywallSheet).Mul(wasteFactor).Ceil().IntPart())
	default:
		return fmt.Sprintf("%d sq ft of materials", area.Mul(wasteFactor).Ceil().IntPart())
	}
}
