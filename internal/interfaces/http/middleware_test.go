package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	apphttp "github.com/jhoicas/Obrix-api/internal/interfaces/http"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// fakePlan implementa el checker de funcionalidades con un mapa fijo.
type fakePlan struct {
	features map[string]bool
	err      error
}

func (f fakePlan) HasFeature(_ context.Context, _ string, feature string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.features[feature], nil
}

func get(t *testing.T, app *fiber.App, path, auth string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

// ──────────────────────────────────────────────────────────────────────────────
// RequireFeature
// ──────────────────────────────────────────────────────────────────────────────

func featureApp(plan fakePlan, events security.Recorder) *fiber.App {
	app := fiber.New()
	app.Get("/crew", apphttp.AuthMiddleware(testJWTSecret, nil), apphttp.RequireFeature("crew", plan, events), ok)
	app.Get("/exports/:dataset", apphttp.AuthMiddleware(testJWTSecret, nil), apphttp.RequireDatasetFeature(plan, events), ok)
	return app
}

func TestRequireFeature_PlanConFuncionalidadPasa(t *testing.T) {
	app := featureApp(fakePlan{features: map[string]bool{"crew": true}}, nil)
	resp, _ := get(t, app, "/crew", tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireFeature_PlanSinFuncionalidad_Retorna403(t *testing.T) {
	events := security.NewEventLog(10, logger.Nop())
	app := featureApp(fakePlan{features: map[string]bool{}}, events)

	resp, body := get(t, app, "/crew", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FEATURE_DISABLED")

	recent := events.Recent(0, testCompanyID)
	require.Len(t, recent, 1)
	assert.Equal(t, security.EventFeatureDenied, recent[0].Type)
	assert.Equal(t, "crew", recent[0].Detail)
}

func TestRequireFeature_FalloDeInfraestructura_Retorna503(t *testing.T) {
	app := featureApp(fakePlan{err: errors.New("db caída")}, nil)
	resp, body := get(t, app, "/crew", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "FEATURE_CHECK_FAILED")
}

func TestRequireFeature_EmpresaInexistente_Retorna403(t *testing.T) {
	app := featureApp(fakePlan{err: domain.ErrNotFound}, nil)
	resp, _ := get(t, app, "/crew", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireDatasetFeature_SegunDataset(t *testing.T) {
	app := featureApp(fakePlan{features: map[string]bool{"invoicing": true}}, nil)

	resp, _ := get(t, app, "/exports/invoices", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, app, "/exports/time_entries", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "time_entries requiere crew")

	resp, _ = get(t, app, "/exports/desconocido", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el dataset desconocido lo resuelve el handler")
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionGuard
// ──────────────────────────────────────────────────────────────────────────────

func sessionApp(m *security.SessionMonitor) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, nil), apphttp.SessionGuard(m), ok)
	return app
}

func TestSessionGuard_SesionActivaPasa(t *testing.T) {
	m := security.NewSessionMonitor(30*time.Minute, time.Minute, nil, logger.Nop())
	m.Begin(testUserID)

	resp, _ := get(t, sessionApp(m), "/protected", tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionGuard_InactividadVenceLaSesion(t *testing.T) {
	events := security.NewEventLog(10, logger.Nop())
	clock := time.Now()
	m := security.NewSessionMonitor(30*time.Minute, time.Minute, events, logger.Nop()).
		WithClock(func() time.Time { return clock })
	m.Begin(testUserID)
	tok := tokenForRole(t, "staff")

	clock = clock.Add(31 * time.Minute)
	resp, body := get(t, sessionApp(m), "/protected", tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "SESSION_EXPIRED")
	assert.Equal(t, 1, events.Len())

	// El mismo token sigue rechazado aunque vuelva la actividad.
	resp, _ = get(t, sessionApp(m), "/protected", tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionGuard_LogoutInvalidaTokensPrevios(t *testing.T) {
	clock := time.Now().Add(time.Hour)
	m := security.NewSessionMonitor(30*time.Minute, time.Minute, nil, logger.Nop()).
		WithClock(func() time.Time { return clock })
	tok := tokenForRole(t, "staff")
	m.End(testUserID)

	resp, _ := get(t, sessionApp(m), "/protected", tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuditInput
// ──────────────────────────────────────────────────────────────────────────────

func auditApp(events *security.EventLog) *fiber.App {
	app := fiber.New()
	g := app.Group("/api", apphttp.AuditInput(sanitize.New(), events))
	g.Post("/customers", apphttp.AuthMiddleware(testJWTSecret, nil), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	g.Post("/auth/login", ok)
	return app
}

func TestAuditInput_MarkupEnNombreRegistraEvento(t *testing.T) {
	events := security.NewEventLog(10, logger.Nop())
	resp := send(t, auditApp(events), http.MethodPost, "/api/customers", tokenForRole(t, "staff"),
		`{"name":"<script>alert(1)</script>Ana","email":"ana@obrix.io","tags":["ok","<b>x</b>"]}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	recent := events.Recent(0, testCompanyID)
	require.Len(t, recent, 1)
	assert.Equal(t, security.EventInputSanitized, recent[0].Type)
	assert.Equal(t, testUserID, recent[0].UserID)
	assert.Contains(t, recent[0].Detail, "name")
	assert.Contains(t, recent[0].Detail, "tags[]")
	assert.NotContains(t, recent[0].Detail, "email")
	assert.NotContains(t, recent[0].Detail, "alert", "el detalle no incluye valores")
}

func TestAuditInput_TextoLimpioYPasswordNoRegistran(t *testing.T) {
	events := security.NewEventLog(10, logger.Nop())
	app := auditApp(events)

	send(t, app, http.MethodPost, "/api/customers", tokenForRole(t, "staff"), `{"name":"Pisos & Más","notes":"a < b"}`)
	send(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"a@obrix.io","password":"<p>&amp;x"}`)
	assert.Equal(t, 0, events.Len())
}
