package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"999.5":       "999.50",
		"25000":       "25,000.00",
		"1234567.891": "1,234,567.89",
		"-1234.5":     "-1,234.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestColumnSizes_SumanDoce(t *testing.T) {
	for n := 1; n <= 12; n++ {
		sum := 0
		for _, s := range columnSizes(n) {
			sum += s
		}
		assert.Equal(t, 12, sum, "n=%d", n)
	}
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnSizes(5))
	assert.Nil(t, columnSizes(0))
}

func TestGenerate_DocumentosValidos(t *testing.T) {
	g := NewMarotoPDFGenerator()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	company := &entity.Company{Name: "Pisos Pro", TaxID: "900123", Email: "hola@pisos.pro"}

	inv := &entity.Invoice{Number: "INV-000001", IssueDate: now, DueDate: now.AddDate(0, 0, 30),
		NetTotal: decimal.NewFromInt(100), TaxTotal: decimal.NewFromInt(8), GrandTotal: decimal.NewFromInt(108)}
	items := []*entity.InvoiceItem{{Description: "Tile install", Quantity: decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.RequireFromString("0.08"), Subtotal: decimal.NewFromInt(100)}}
	b, err := g.GenerateInvoicePDF(context.Background(), inv, company, &entity.Customer{Name: "Ana"}, items, "https://pay.example/1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))

	est := &entity.Estimate{Name: "Cocina", Area: decimal.NewFromInt(100), MaterialCost: decimal.NewFromInt(550),
		Total: decimal.NewFromInt(550), QuantityText: "110 sq ft of tile", CreatedAt: now}
	b, err = g.GenerateEstimatePDF(context.Background(), company, est, estimate.Input{Width: "10", Length: "10"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))

	b, err = g.GenerateTablePDF("Materials", "2026-10-01", []string{"SKU", "Name"}, [][]string{{"T-1", "Tile"}})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}
