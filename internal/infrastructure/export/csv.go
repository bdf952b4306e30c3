// Package export serializa tablas a CSV y XLSX y arma los nombres de archivo de descarga.
package export

import (
	"bytes"
	"strings"
)

// Table datos tabulares listos para exportar; la primera fila es el encabezado.
type Table struct {
	Name    string // base del nombre de archivo, ej. "invoices"
	Title   string // título para PDF/XLSX
	Headers []string
	Rows    [][]string
}

// QuoteField envuelve el campo en comillas dobles duplicando las comillas internas.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSV serializa la tabla: todos los campos entre comillas, separados por coma,
// filas terminadas en "\n" (sin "\r"). Compatible con los archivos exportados existentes.
func CSV(t Table) []byte {
	var buf bytes.Buffer
	writeRecord(&buf, t.Headers)
	for _, r := range t.Rows {
		writeRecord(&buf, r)
	}
	return buf.Bytes()
}

func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(QuoteField(f))
	}
	buf.WriteByte('\n')
}
