package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Obrix-api/internal/application/analytics"
)

// DashboardHandler KPIs del mes en curso.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Ingresos del mes, cartera, nómina, inventario y presupuesto. El mes se calcula en el servidor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
