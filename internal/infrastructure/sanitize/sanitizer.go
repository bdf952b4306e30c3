// Package sanitize limpia texto libre antes de guardarlo (nombres, notas, descripciones).
// No es una frontera de seguridad: la autorización está en el backend.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer aplica las políticas de bluemonday. Seguro para uso concurrente.
type Sanitizer struct {
	strict *bluemonday.Policy
	rich   *bluemonday.Policy
}

// New construye el sanitizador con la política estricta (texto plano) y UGC (formato básico).
func New() *Sanitizer {
	return &Sanitizer{
		strict: bluemonday.StrictPolicy(),
		rich:   bluemonday.UGCPolicy(),
	}
}

// maxTextPasses pasadas de decodificar y limpiar antes de rendirse.
const maxTextPasses = 4

// Text elimina todo el markup y devuelve texto plano.
// Las entidades se decodifican antes de limpiar, así "&lt;script&gt;" se trata como etiqueta,
// y se repite hasta que el resultado ya no cambia: el texto final no contiene markup.
// Si no se estabiliza se devuelve la salida escapada de bluemonday.
func (s *Sanitizer) Text(in string) string {
	if in == "" {
		return ""
	}
	out := in
	for i := 0; i < maxTextPasses; i++ {
		next := stripSchemes(html.UnescapeString(s.strict.Sanitize(html.UnescapeString(out))))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	return strings.TrimSpace(stripSchemes(s.strict.Sanitize(out)))
}

// RichText conserva formato básico (negrita, listas, enlaces http/https) y quita scripts,
// manejadores de eventos y URIs javascript:/vbscript:/data:.
func (s *Sanitizer) RichText(in string) string {
	if in == "" {
		return ""
	}
	return strings.TrimSpace(s.rich.Sanitize(in))
}

// Changed informa si el sanitizado alteró la entrada (para la bitácora de seguridad).
func (s *Sanitizer) Changed(in string) bool {
	return s.Text(in) != strings.TrimSpace(in)
}

var dangerousScheme = regexp.MustCompile(`(?i)(javascript|vbscript|data):`)

// stripSchemes quita esquemas peligrosos que sobreviven como texto plano
// (ej. un nombre "javascript:alert(1)" sin etiquetas). Repite porque quitar uno
// puede formar otro ("javajavascript:script:").
func stripSchemes(s string) string {
	for {
		next := dangerousScheme.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}
