package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/security"
)

// SecurityHandler consulta de la bitácora de seguridad (solo admin).
type SecurityHandler struct {
	events *security.EventLog
}

// NewSecurityHandler construye el handler.
func NewSecurityHandler(events *security.EventLog) *SecurityHandler {
	return &SecurityHandler{events: events}
}

// Events godoc
// @Summary      Eventos de seguridad recientes de la empresa
// @Tags         security
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo (default todos los guardados)"
// @Success      200  {array}  dto.SecurityEventDTO
// @Router       /api/security/events [get]
func (h *SecurityHandler) Events(c *fiber.Ctx) error {
	list := h.events.Recent(c.QueryInt("limit"), GetCompanyID(c))
	out := make([]dto.SecurityEventDTO, 0, len(list))
	for _, e := range list {
		out = append(out, dto.SecurityEventDTO{
			Type: e.Type, UserID: e.UserID, CompanyID: e.CompanyID, IP: e.IP, Detail: e.Detail, At: e.At,
		})
	}
	return c.JSON(out)
}
