package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Obrix-api/internal/infrastructure/export"
)

func TestCSV_TodosLosCamposEntreComillas(t *testing.T) {
	out := export.CSV(export.Table{
		Headers: []string{"Name", "Notes"},
		Rows: [][]string{
			{"Acme", `dijo "hola"`},
			{"Uno, Dos", ""},
			{"multi\nlínea", "x"},
		},
	})
	want := "\"Name\",\"Notes\"\n" +
		"\"Acme\",\"dijo \"\"hola\"\"\"\n" +
		"\"Uno, Dos\",\"\"\n" +
		"\"multi\nlínea\",\"x\"\n"
	assert.Equal(t, want, string(out))
}

func TestQuoteField(t *testing.T) {
	assert.Equal(t, `""`, export.QuoteField(""))
	assert.Equal(t, `""""`, export.QuoteField(`"`))
	assert.Equal(t, `"a""b""c"`, export.QuoteField(`a"b"c`))
}

func TestFilename_IncluyeFechaDeHoy(t *testing.T) {
	now := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "invoices_2026-03-07.csv", export.Filename("invoices", export.FormatCSV, now))
	assert.Equal(t, "time_entries_2026-03-07.xlsx", export.Filename("time entries", export.FormatXLSX, now))
	assert.Equal(t, "report_1772927940.pdf", export.Filename("report", export.FormatPDF, now))
	assert.Equal(t, "export_2026-03-07.json", export.DatedFilename(" ../ ", "json", now))

	today := time.Now()
	assert.Contains(t, export.Filename("budget", export.FormatCSV, today), today.Format("2006-01-02"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", export.ContentType(export.FormatPDF))
	assert.Equal(t, "application/octet-stream", export.ContentType("zip"))
}

func TestXLSX_EscribeEncabezadoYFilas(t *testing.T) {
	data, err := export.XLSX(export.Table{
		Headers: []string{"SKU", "Name"},
		Rows:    [][]string{{"T-1", "Tile"}, {"P-2", "Paint"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SKU", "Name"}, {"T-1", "Tile"}, {"P-2", "Paint"}}, rows)
}
