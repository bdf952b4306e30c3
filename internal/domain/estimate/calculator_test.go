package estimate_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Área
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalArea_PlanoEsAnchoPorLargo(t *testing.T) {
	cases := [][2]float64{{0, 0}, {10, 10}, {3.5, 7.25}, {120, 0.5}}
	for _, c := range cases {
		in := estimate.Input{Unit: estimate.UnitSquareFeet, Width: estimate.V(c[0]), Length: estimate.V(c[1]), Height: estimate.V(9), SurfaceType: "Floor"}
		want := decimal.NewFromFloat(c[0]).Mul(decimal.NewFromFloat(c[1]))
		assert.True(t, want.Equal(estimate.TotalArea(in)), "w=%v l=%v", c[0], c[1])
	}
}

func TestTotalArea_MuroUsaAlturaComun(t *testing.T) {
	in := estimate.Input{Width: estimate.V(12), Length: estimate.V(10), Height: estimate.V(8), SurfaceType: "Wall"}
	// (12×8) + (10×8) = 176
	assertDec(t, "176", estimate.TotalArea(in))
}

func TestTotalArea_AreasAdicionalesSumanMonotonamente(t *testing.T) {
	in := estimate.Input{Width: estimate.V(10), Length: estimate.V(10), Height: estimate.V(8), SurfaceType: "Wall"}
	prev := estimate.TotalArea(in)

	extras := []estimate.Dimension{
		{Width: estimate.V(2), Length: estimate.V(3)},
		{Width: estimate.V(0), Length: estimate.V(4)},
		{Width: estimate.V(5.5), Length: estimate.V(1)},
	}
	for _, d := range extras {
		in.AdditionalAreas = append(in.AdditionalAreas, d)
		got := estimate.TotalArea(in)
		contribution := d.Width.Decimal().Mul(dec("8")).Add(d.Length.Decimal().Mul(dec("8")))
		assert.True(t, prev.Add(contribution).Equal(got), "cada área suma su contribución con la regla de muro")
		assert.True(t, got.GreaterThanOrEqual(prev))
		prev = got
	}
}

func TestTotalArea_PiesLinealesSoloLeeLargo(t *testing.T) {
	in := estimate.Input{Unit: estimate.UnitLinearFeet, Width: estimate.V(99), Length: estimate.V(25), SurfaceType: "Floor"}
	assertDec(t, "25", estimate.TotalArea(in))

	in.SurfaceType = "Wall"
	in.Height = estimate.V(4)
	assertDec(t, "100", estimate.TotalArea(in))
}

// ──────────────────────────────────────────────────────────────────────────────
// Costos
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_EjemploTileSobrePiso(t *testing.T) {
	res := estimate.Calculate(estimate.Input{
		Unit: estimate.UnitSquareFeet, Width: "10", Length: "10",
		SurfaceType: "Floor", Material: "Tile", Industry: "Tile",
	})
	assertDec(t, "100", res.Area)
	// La regla (Tile, Wall) no aplica sobre piso: 100 × 5.50
	assert.Equal(t, "550.00", res.MaterialCost.StringFixed(2))
	assertDec(t, "0", res.LaborCost)
	assertDec(t, "550", res.Total)
}

func TestCalculate_MultiplicadoresPorIndustria(t *testing.T) {
	cases := []struct {
		material, industry, surface, unitCost string
	}{
		{"Hardwood", "Flooring", "Floor", "8.80"},
		{"Paint (Exterior)", "Painting", "Exterior", "2.60"},
		{"Tile", "Tile", "Wall", "6.60"},
		{"Carpet", "Flooring", "Wall", "3.00"},
		{"Unobtainium", "Other", "Floor", "3.00"},
	}
	for _, c := range cases {
		assertDec(t, c.unitCost, estimate.UnitCost(c.material, c.industry, c.surface), c.material)
	}
}

func TestCalculate_ManoDeObraYMargen(t *testing.T) {
	res := estimate.Calculate(estimate.Input{
		Width: "20", Length: "10", SurfaceType: "Floor", Material: "Vinyl",
		LaborRate: "250", MarkupPercent: "20",
	})
	assertDec(t, "200", res.Area)
	assertDec(t, "700", res.MaterialCost) // 200 × 3.50
	assertDec(t, "500", res.LaborCost)    // 200 × 250/100
	assertDec(t, "240", res.Markup)       // 1200 × 20%
	assertDec(t, "1440", res.Total)
}

func TestCalculate_CostoDeMaterialEsLineal(t *testing.T) {
	base := estimate.Input{Width: "10", Length: "10", SurfaceType: "Floor", Material: "Laminate", Industry: "Flooring"}
	double := base
	double.Width = "20"

	a := estimate.Calculate(base).MaterialCost
	b := estimate.Calculate(double).MaterialCost
	assert.True(t, a.Mul(decimal.NewFromInt(2)).Equal(b))
}

func TestCalculate_MetrosCuadradosIdaYVuelta(t *testing.T) {
	for _, w := range []float64{1, 3.3, 12.5, 47.25} {
		in := estimate.Input{Unit: estimate.UnitSquareMeters, Width: estimate.V(w), Length: estimate.V(2), SurfaceType: "Floor", Material: "Carpet"}
		res := estimate.Calculate(in)

		raw := estimate.TotalArea(in)
		diff := res.Area.Sub(raw).Abs()
		assert.True(t, diff.LessThan(dec("0.000001")), "el área mostrada vuelve a m²: %s vs %s", res.Area, raw)

		// El costo se calcula sobre pie²: m² × 10.764 × 3.00
		want := raw.Mul(estimate.SquareMetersToFeet).Mul(dec("3.00"))
		assert.True(t, want.Equal(res.MaterialCost))
	}
}

func TestCalculate_EntradasNoNumericasValenCero(t *testing.T) {
	res := estimate.Calculate(estimate.Input{
		Width: "abc", Length: "", Height: "1e", SurfaceType: "Floor", Material: "Tile",
		LaborRate: "n/a", MarkupPercent: "--",
	})
	assert.True(t, res.Area.IsZero())
	assert.True(t, res.Total.IsZero())
	assert.Equal(t, "0 sq ft of tile", res.QuantityText)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidad de material
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantityText(t *testing.T) {
	cases := []struct {
		material string
		area     string
		want     string
	}{
		// ceil(350/350 × 1.1) = ceil(1.1) = 2
		{"Paint (Interior)", "350", "2 gallons of paint"},
		{"Paint (Exterior)", "100", "1 gallon of paint"},
		{"Tile", "100", "110 sq ft of tile"},
		{"Vinyl", "55", "61 sq ft of vinyl"},
		{"Laminate", "10", "11 sq ft of laminate"},
		{"Drywall", "320", "11 sheets of 4x8 drywall"},
		{"Concrete", "200", "220 sq ft of materials"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, estimate.QuantityText(c.material, dec(c.area)), c.material)
	}
}

func TestValue_AceptaNumerosYStringsEnJSON(t *testing.T) {
	var in estimate.Input
	raw := `{"unit":"sqft","width":12,"length":"10.5","height":null,"labor_rate":"x","additional_areas":[{"width":"2","length":3}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	assertDec(t, "12", in.Width.Decimal())
	assertDec(t, "10.5", in.Length.Decimal())
	assert.True(t, in.Height.Decimal().IsZero())
	assert.True(t, in.LaborRate.Decimal().IsZero())
	require.Len(t, in.AdditionalAreas, 1)
	assertDec(t, "3", in.AdditionalAreas[0].Length.Decimal())
}

func TestMaterials_Ordenados(t *testing.T) {
	list := estimate.Materials()
	require.Len(t, list, 10)
	assert.Equal(t, "Carpet", list[0].Name)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}
