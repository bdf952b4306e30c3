package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Formatos soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Content types de descarga.
var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ContentType devuelve el content type del formato.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// slug deja solo caracteres seguros para un nombre de archivo.
func slug(name string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(name), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "export"
	}
	return s
}

// DatedFilename <name>_<YYYY-MM-DD>.<ext>, usado para CSV, XLSX y proyectos JSON.
func DatedFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", slug(name), now.Format("2006-01-02"), ext)
}

// TimestampFilename <name>_<unix>.<ext>, usado para PDF.
func TimestampFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%d.%s", slug(name), now.Unix(), ext)
}

// Filename aplica la convención del formato.
func Filename(name, format string, now time.Time) string {
	if format == FormatPDF {
		return TimestampFilename(name, format, now)
	}
	return DatedFilename(name, format, now)
}
