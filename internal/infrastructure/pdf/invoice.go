package pdf

// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Tax ID    │  N° Factura + Fechas         │
//	│  EMISOR / CLIENTE                                           │
//	│  TABLA: Cant | Descripción | P.Unit | Imp. | Subtotal        │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  FOOTER: QR del link de pago + notas                        │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

// GenerateInvoicePDF genera el PDF de la factura. paymentLink vacío omite el QR.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
	items []*entity.InvoiceItem,
	paymentLink string,
) ([]byte, error) {
	m := newDocument("Invoice "+invoice.Number, company.Name, false)

	m.AddRows(invoiceHeaderRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(company, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(invoiceFooterRows(invoice, paymentLink)...)

	return render(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func invoiceHeaderRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Tax ID: "+nonEmpty(company.TaxID, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(invoice.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Issued: "+invoice.IssueDate.Format("2006-01-02"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New("Due: "+invoice.DueDate.Format("2006-01-02"), props.Text{Size: 8, Align: align.Right, Top: 17, Color: colorGray}),
		),
	)
}

func partiesRow(company *entity.Company, customer *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New("FROM", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(company.Address, "—"), props.Text{Size: 8, Top: 6}),
			text.New(fmt.Sprintf("%s  |  %s", nonEmpty(company.Phone, "—"), nonEmpty(company.Email, "—")),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s  |  %s", nonEmpty(customer.Email, "—"), nonEmpty(customer.Phone, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 5, align.Left),
		h("Unit price", 2, align.Right),
		h("Tax", 1, align.Center),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []*entity.InvoiceItem) []core.Row {
	hundred := decimal.NewFromInt(100)
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.Mul(hundred).String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: right, Top: 12})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(label("Subtotal:", 1), label("Tax:", 6), grand("TOTAL DUE:", 2)),
		col.New(3).Add(
			value("$"+formatMoney(invoice.NetTotal), 1),
			value("$"+formatMoney(invoice.TaxTotal), 6),
			grand("$"+formatMoney(invoice.GrandTotal), 1),
		),
	)
}

func invoiceFooterRows(invoice *entity.Invoice, paymentLink string) []core.Row {
	var rows []core.Row
	if paymentLink != "" {
		rows = append(rows, row.New(40).Add(
			col.New(3).Add(code.NewQr(paymentLink, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Scan to pay online", props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary}),
				text.New(paymentLink, props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
			),
		))
	}
	if notes := strings.TrimSpace(invoice.Notes); notes != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)))
		for _, chunk := range splitEvery(notes, 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 7.5, Color: colorGray, Left: 2}),
			)))
		}
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Thank you for your business.", props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 3}),
	)))
	return rows
}
