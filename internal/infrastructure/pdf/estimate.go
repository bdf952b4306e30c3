package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

var unitLabels = map[estimate.UnitMode]string{
	estimate.UnitSquareFeet:   "sq ft",
	estimate.UnitSquareMeters: "sq m",
	estimate.UnitLinearFeet:   "linear ft",
}

// GenerateEstimatePDF cotización de EasyCalc: medidas, desglose de costos y cantidad sugerida.
func (g *MarotoPDFGenerator) GenerateEstimatePDF(
	_ context.Context,
	company *entity.Company,
	est *entity.Estimate,
	in estimate.Input,
) ([]byte, error) {
	m := newDocument("Estimate "+est.Name, company.Name, false)

	m.AddRows(row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(company.Phone, "")+"  "+nonEmpty(company.Email, ""), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ESTIMATE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(est.Name, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New(est.CreatedAt.Format("2006-01-02"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	unit := unitLabels[in.Unit]
	if unit == "" {
		unit = unitLabels[estimate.UnitSquareFeet]
	}
	m.AddRows(sectionTitle("Project"))
	m.AddRows(
		kvRow("Surface", nonEmpty(in.SurfaceType, "—")),
		kvRow("Material", nonEmpty(in.Material, "—")),
		kvRow("Industry", nonEmpty(in.Industry, "—")),
		kvRow("Dimensions", fmt.Sprintf("%s x %s (height %s)",
			in.Width.Decimal().String(), in.Length.Decimal().String(), in.Height.Decimal().String())),
	)
	for i, d := range in.AdditionalAreas {
		m.AddRows(kvRow(fmt.Sprintf("Additional area %d", i+1),
			fmt.Sprintf("%s x %s", d.Width.Decimal().String(), d.Length.Decimal().String())))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("Cost breakdown"))
	m.AddRows(
		kvRow("Area", est.Area.StringFixed(2)+" "+unit),
		kvRow("Materials", "$"+formatMoney(est.MaterialCost)),
		kvRow("Labor", "$"+formatMoney(est.LaborCost)),
		kvRow("Markup", "$"+formatMoney(est.Markup)),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(9).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2})),
		col.New(4).Add(text.New("$"+formatMoney(est.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2})),
	))

	if est.QuantityText != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Recommended purchase: "+est.QuantityText+" (includes 10% waste)", props.Text{Size: 8.5, Top: 2}),
		)))
	}
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("This estimate is valid for 30 days. Final pricing may vary after site inspection.",
			props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 4}),
	)))
	return render(m)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func kvRow(k, v string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(k, props.Text{Size: 8.5, Color: colorGray, Top: 1})),
		col.New(8).Add(text.New(v, props.Text{Size: 8.5, Align: align.Right, Top: 1})),
	)
}
