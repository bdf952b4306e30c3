package http

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/security"
)

// ChangeDetector informa si el sanitizado alteraría un texto (sanitize.Sanitizer lo implementa).
type ChangeDetector interface {
	Changed(s string) bool
}

// Campos que no pasan por el sanitizador de texto.
var auditSkipFields = map[string]bool{
	"password": true,
	"image":    true,
}

// AuditInput registra un evento input_sanitized cuando un cuerpo JSON trae texto que el
// sanitizador modifica. Corre después del handler para tener la identidad del token;
// el detalle lleva los nombres de campo, nunca los valores.
func AuditInput(detector ChangeDetector, events security.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if detector == nil || events == nil {
			return err
		}
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		default:
			return err
		}
		if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
			return err
		}

		var body interface{}
		if json.Unmarshal(c.Body(), &body) != nil {
			return err
		}
		fields := map[string]bool{}
		collectChanged(detector, "", body, fields)
		if len(fields) == 0 {
			return err
		}
		names := make([]string, 0, len(fields))
		for f := range fields {
			names = append(names, f)
		}
		sort.Strings(names)
		events.Record(security.Event{
			Type:      security.EventInputSanitized,
			UserID:    GetUserID(c),
			CompanyID: GetCompanyID(c),
			IP:        c.IP(),
			Detail:    c.Method() + " " + c.Path() + ": " + strings.Join(names, ","),
		})
		return err
	}
}

func collectChanged(detector ChangeDetector, path string, v interface{}, out map[string]bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if auditSkipFields[k] {
				continue
			}
			p := k
			if path != "" {
				p = path + "." + k
			}
			collectChanged(detector, p, child, out)
		}
	case []interface{}:
		for _, child := range t {
			collectChanged(detector, path+"[]", child, out)
		}
	case string:
		if detector.Changed(t) {
			out[path] = true
		}
	}
}
