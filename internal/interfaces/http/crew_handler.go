package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
)

// CrewHandler cuadrilla: empleados, registro de horas y nómina.
type CrewHandler struct {
	uc *usecase.CrewUseCase
}

// NewCrewHandler construye el handler.
func NewCrewHandler(uc *usecase.CrewUseCase) *CrewHandler {
	return &CrewHandler{uc: uc}
}

// CreateEmployee godoc
// @Summary      Alta de empleado
// @Description  Limitado por max_employees del plan (402 LIMIT_REACHED).
// @Tags         crew
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Router       /api/crew/employees [post]
func (h *CrewHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateEmployee(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         crew
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active, inactive"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/crew/employees [get]
func (h *CrewHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.uc.ListEmployees(c.UserContext(), GetCompanyID(c), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmployee godoc
// @Summary      Actualizar empleado
// @Tags         crew
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Router       /api/crew/employees/{id} [put]
func (h *CrewHandler) UpdateEmployee(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateEmployee(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteEmployee godoc
// @Summary      Eliminar empleado
// @Tags         crew
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Router       /api/crew/employees/{id} [delete]
func (h *CrewHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.uc.DeleteEmployee(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LogTime godoc
// @Summary      Registrar horas
// @Tags         crew
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTimeEntryRequest  true  "Empleado, fecha y horas"
// @Success      201   {object}  dto.TimeEntryResponse
// @Router       /api/crew/time-entries [post]
func (h *CrewHandler) LogTime(c *fiber.Ctx) error {
	var in dto.CreateTimeEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.LogTime(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTime godoc
// @Summary      Listar horas del período
// @Tags         crew
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "YYYY-MM-DD (default: inicio del mes)"
// @Param        to           query  string  false  "YYYY-MM-DD inclusive"
// @Param        employee_id  query  string  false  "Filtrar por empleado"
// @Success      200  {array}  dto.TimeEntryResponse
// @Router       /api/crew/time-entries [get]
func (h *CrewHandler) ListTime(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListTime(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteTime godoc
// @Summary      Eliminar registro de horas
// @Tags         crew
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Router       /api/crew/time-entries/{id} [delete]
func (h *CrewHandler) DeleteTime(c *fiber.Ctx) error {
	if err := h.uc.DeleteTime(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Payroll godoc
// @Summary      Nómina del período
// @Description  Horas regulares hasta 40 por semana ISO; el excedente se paga ×1.5.
// @Tags         crew
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "YYYY-MM-DD (default: inicio del mes)"
// @Param        to           query  string  false  "YYYY-MM-DD inclusive"
// @Param        employee_id  query  string  false  "Filtrar por empleado"
// @Success      200  {object}  dto.PayrollSummaryDTO
// @Router       /api/crew/payroll [get]
func (h *CrewHandler) Payroll(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.Payroll(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
