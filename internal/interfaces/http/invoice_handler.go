package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/billing"
	"github.com/jhoicas/Obrix-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación y recibos (protegido).
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	receipts *billing.ReceiptUseCase
	pdf      *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, receipts *billing.ReceiptUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, receipts: receipts, pdf: pdf}
}

// Create godoc
// @Summary      Crear factura
// @Description  Totales calculados en el servidor: subtotal = cantidad × precio, impuesto = subtotal × tasa.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	invoice, err := h.invoices.Create(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "draft, sent, paid, overdue, void"
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Param        limit        query  int     false  "Máximo (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.invoices.List(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura con líneas y monto pagado
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.invoices.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la factura
// @Description  draft→sent→paid|overdue|void. paid y void son finales.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.InvoiceStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.InvoiceStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.invoices.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, filename, "application/pdf", data)
}

// Email godoc
// @Summary      Enviar factura por correo
// @Description  Adjunta el PDF. Sin "to" se usa el email del cliente. Una factura en borrador pasa a enviada.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.EmailInvoiceRequest  false "Destinatario y mensaje"
// @Success      202
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/email [post]
func (h *InvoiceHandler) Email(c *fiber.Ctx) error {
	var in dto.EmailInvoiceRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	if err := h.pdf.EmailInvoice(c.UserContext(), GetCompanyID(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// CreateReceipt godoc
// @Summary      Registrar recibo de pago
// @Description  Si los recibos cubren el total, la factura queda pagada (misma transacción).
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Monto y método"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *InvoiceHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.receipts.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceipts godoc
// @Summary      Listar recibos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *InvoiceHandler) ListReceipts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.receipts.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteReceipt godoc
// @Summary      Eliminar recibo
// @Tags         receipts
// @Security     Bearer
// @Param        id   path  string  true  "ID del recibo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *InvoiceHandler) DeleteReceipt(c *fiber.Ctx) error {
	if err := h.receipts.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
