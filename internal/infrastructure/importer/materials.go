package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
)

// MaterialColumns cabecera esperada del CSV de materiales. sku y name son obligatorias.
var MaterialColumns = []string{"sku", "name", "unit", "quantity", "unit_cost", "reorder_level"}

// ErrMissingColumns el archivo no trae las columnas obligatorias.
var ErrMissingColumns = errors.New("importer: faltan columnas obligatorias (sku, name)")

// MaterialRow fila válida del archivo. Line es el número de línea en el archivo (1 = cabecera).
type MaterialRow struct {
	Line int
	Item entity.MaterialItem
}

// RowError fila descartada y el motivo.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("línea %d: %s", e.Line, e.Reason)
}

// MaterialsResult resultado del parseo.
type MaterialsResult struct {
	Encoding string
	Rows     []MaterialRow
	Errors   []RowError
}

// ParseMaterials lee un CSV de materiales. Acepta coma o punto y coma como separador
// y columnas en cualquier orden. Las filas inválidas se reportan sin abortar el archivo.
func ParseMaterials(r io.Reader) (*MaterialsResult, error) {
	utf8r, encName, err := NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("importer: leer archivo: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectComma(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("importer: leer csv: %w", err)
	}

	cols := headerIndex(header)
	if _, ok := cols["sku"]; !ok {
		return nil, ErrMissingColumns
	}
	if _, ok := cols["name"]; !ok {
		return nil, ErrMissingColumns
	}

	res := &MaterialsResult{Encoding: encName}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: leer csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(rec) {
			continue
		}
		item, reason := parseMaterial(cols, rec)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
			continue
		}
		res.Rows = append(res.Rows, MaterialRow{Line: line, Item: item})
	}
	return res, nil
}

func parseMaterial(cols map[string]int, rec []string) (entity.MaterialItem, string) {
	item := entity.MaterialItem{
		SKU:  cell(rec, cols, "sku"),
		Name: cell(rec, cols, "name"),
		Unit: cell(rec, cols, "unit"),
	}
	if item.SKU == "" {
		return item, "sku vacío"
	}
	if item.Name == "" {
		return item, "name vacío"
	}
	var reason string
	if item.Quantity, reason = number(rec, cols, "quantity"); reason != "" {
		return item, reason
	}
	if item.Quantity.IsNegative() {
		return item, "quantity no puede ser negativa"
	}
	if item.UnitCost, reason = number(rec, cols, "unit_cost"); reason != "" {
		return item, reason
	}
	if item.ReorderLevel, reason = number(rec, cols, "reorder_level"); reason != "" {
		return item, reason
	}
	return item, ""
}

// number columna numérica; vacía vale 0. Acepta "$" y separador de miles ",".
func number(rec []string, cols map[string]int, name string) (decimal.Decimal, string) {
	s := cell(rec, cols, name)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Sprintf("%s inválido: %q", name, cell(rec, cols, name))
	}
	return d, ""
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if name != "" {
			cols[name] = i
		}
	}
	return cols
}

func cell(rec []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// detectComma usa ';' si la primera línea tiene más punto y coma que comas (Excel en locales europeos).
func detectComma(raw []byte) rune {
	first := string(raw)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
