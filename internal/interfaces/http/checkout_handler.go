package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/checkout"
	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/usecase"
)

// CheckoutHandler planes, checkout de suscripción y webhook del proveedor de pagos.
type CheckoutHandler struct {
	uc    *checkout.UseCase
	users *usecase.UserUseCase
}

// NewCheckoutHandler construye el handler. users se usa para el email del pagador.
func NewCheckoutHandler(uc *checkout.UseCase, users *usecase.UserUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, users: users}
}

// Plans godoc
// @Summary      Planes publicados
// @Tags         billing
// @Produce      json
// @Success      200  {array}  dto.PlanDTO
// @Router       /api/plans [get]
func (h *CheckoutHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(h.uc.Plans())
}

// Checkout godoc
// @Summary      Iniciar checkout de un plan
// @Description  Devuelve la URL de redirección del proveedor. El plan se extiende al aprobarse el pago.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "plan_id"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/billing/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	companyID := GetCompanyID(c)
	user, err := h.users.GetByID(c.UserContext(), companyID, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Checkout(c.UserContext(), companyID, user.Email, in.PlanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Intentos de pago de la empresa
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SubscriptionPaymentResponse
// @Router       /api/billing/payments [get]
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Sincronización de precios
// @Description  Compara pricing.json con el mapa de precios del proveedor.
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileReportDTO
// @Router       /api/billing/reconcile [get]
func (h *CheckoutHandler) Reconcile(c *fiber.Ctx) error {
	return c.JSON(h.uc.Reconcile())
}

// Notification godoc
// @Summary      Webhook de pagos
// @Description  Acepta el JSON {type, data.id} o los query params type/data.id. Otros tipos se ignoran.
// @Tags         billing
// @Accept       json
// @Param        body  body  dto.NotificationRequest  false  "Aviso del proveedor"
// @Success      200
// @Router       /api/billing/webhook [post]
func (h *CheckoutHandler) Notification(c *fiber.Ctx) error {
	var in dto.NotificationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	kind := in.Type
	if kind == "" {
		kind = c.Query("type", c.Query("topic"))
	}
	paymentID := in.Data.ID
	if paymentID == "" {
		paymentID = c.Query("data.id", c.Query("id"))
	}
	if kind != "payment" || paymentID == "" {
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.uc.HandleNotification(c.UserContext(), paymentID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
