package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/export"
	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/domain"
)

// featureChecker es el contrato mínimo que necesita el middleware para verificar el plan.
// Lo implementa *usecase.EntitlementService.
type featureChecker interface {
	HasFeature(ctx context.Context, companyID, feature string) (bool, error)
}

// sessionChecker lo implementa *security.SessionMonitor.
type sessionChecker interface {
	Check(userID string, issuedAt time.Time) error
}

// RequireFeature devuelve un middleware Fiber que verifica si el plan de la empresa
// del token incluye la funcionalidad. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 FEATURE_DISABLED → no incluida en el plan (o plan vencido).
//   - 503 FEATURE_CHECK_FAILED → fallo de infraestructura al consultar la empresa.
//   - 401 si no hay company_id en el contexto.
func RequireFeature(feature string, checker featureChecker, events security.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return checkFeature(c, feature, checker, events)
	}
}

// RequireDatasetFeature igual que RequireFeature pero la funcionalidad depende del
// dataset pedido en :dataset. Los datasets desconocidos siguen al handler (404).
func RequireDatasetFeature(checker featureChecker, events security.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feature, ok := export.DatasetFeature[c.Params("dataset")]
		if !ok {
			return c.Next()
		}
		return checkFeature(c, feature, checker, events)
	}
}

func checkFeature(c *fiber.Ctx, feature string, checker featureChecker, events security.Recorder) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "company_id no encontrado en el token",
		})
	}

	ok, err := checker.HasFeature(c.UserContext(), companyID, feature)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "FEATURE_CHECK_FAILED",
			Message: "no se pudo verificar el plan, intente más tarde",
		})
	}
	if !ok {
		if events != nil {
			events.Record(security.Event{
				Type: security.EventFeatureDenied, UserID: GetUserID(c), CompanyID: companyID,
				IP: c.IP(), Detail: feature,
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FEATURE_DISABLED",
			Message: "la funcionalidad '" + feature + "' no está incluida en el plan",
		})
	}
	return c.Next()
}

// SessionGuard rechaza con 401 SESSION_EXPIRED los tokens de sesiones vencidas por
// inactividad o cerradas con logout. Debe usarse DESPUÉS de AuthMiddleware.
func SessionGuard(sessions sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := sessions.Check(GetUserID(c), GetIssuedAt(c)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "SESSION_EXPIRED",
				Message: "sesión expirada por inactividad, inicie sesión de nuevo",
			})
		}
		return c.Next()
	}
}
