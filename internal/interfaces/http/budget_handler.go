package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
)

// BudgetHandler partidas de presupuesto por período.
type BudgetHandler struct {
	uc *usecase.BudgetUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *usecase.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear partida
// @Tags         budget
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetCategoryRequest  true  "Nombre, período YYYY-MM y monto planeado"
// @Success      201   {object}  dto.BudgetCategoryResponse
// @Router       /api/budget/categories [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBudgetCategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar partida
// @Tags         budget
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la partida"
// @Param        body  body  dto.UpdateBudgetCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BudgetCategoryResponse
// @Router       /api/budget/categories/{id} [put]
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBudgetCategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordSpend godoc
// @Summary      Registrar gasto
// @Tags         budget
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la partida"
// @Param        body  body  dto.RecordSpendRequest  true  "Monto"
// @Success      200   {object}  dto.BudgetCategoryResponse
// @Router       /api/budget/categories/{id}/spend [post]
func (h *BudgetHandler) RecordSpend(c *fiber.Ctx) error {
	var in dto.RecordSpendRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordSpend(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar partida
// @Tags         budget
// @Security     Bearer
// @Param        id   path  string  true  "ID de la partida"
// @Success      204
// @Router       /api/budget/categories/{id} [delete]
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen del período
// @Tags         budget
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Success      200  {object}  dto.BudgetSummaryDTO
// @Router       /api/budget/summary [get]
func (h *BudgetHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetCompanyID(c), c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
