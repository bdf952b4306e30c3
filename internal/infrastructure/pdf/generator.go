// Package pdf genera con Maroto v2 los PDF de la aplicación: factura, cotización
// de EasyCalc y reportes tabulares de exportación.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de PDF de facturación, cotizaciones y exportes.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title, author string, landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return maroto.New(b.Build())
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Tabla genérica ────────────────────────────────────────────────────────────

// GenerateTablePDF reporte tabular (exportes): título, fecha y una fila por registro.
// Las columnas se reparten en la grilla de 12; con más de 6 columnas se usa A4 horizontal.
func (g *MarotoPDFGenerator) GenerateTablePDF(title, subtitle string, headers []string, rows [][]string) ([]byte, error) {
	m := newDocument(title, "Obrix", len(headers) > 6)

	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		text.New(subtitle, props.Text{Size: 8, Color: colorGray, Top: 8}),
	)))

	sizes := columnSizes(len(headers))
	header := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		header = append(header, col.New(sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	m.AddRows(row.New(8).Add(header...).WithStyle(&props.Cell{BackgroundColor: colorPrimary}))

	for n, r := range rows {
		cols := make([]core.Col, 0, len(headers))
		for i := range headers {
			v := ""
			if i < len(r) {
				v = r[i]
			}
			cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{Size: 7.5, Top: 1.5, Left: 1, Right: 1})))
		}
		rr := row.New(7).Add(cols...)
		if n%2 == 1 {
			rr = rr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		m.AddRows(rr)
	}
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin registros", props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 3}),
		)))
	}
	return render(m)
}

// columnSizes reparte las 12 columnas de la grilla; el sobrante va a las primeras.
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > 12 {
		n = 12
	}
	sizes := make([]int, n)
	base, extra := 12/n, 12%n
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles y dos decimales.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	var buf strings.Builder
	if d.IsNegative() {
		buf.WriteByte('-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte(c)
	}
	buf.WriteString(frac)
	return buf.String()
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
