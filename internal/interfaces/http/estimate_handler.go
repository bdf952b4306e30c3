package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

// maxProjectSize tamaño máximo de un archivo de proyecto importado.
const maxProjectSize = 1 << 20

// EstimateHandler EasyCalc: cálculo, cotizaciones guardadas, borrador y archivos de proyecto.
type EstimateHandler struct {
	uc *estimating.UseCase
}

// NewEstimateHandler construye el handler.
func NewEstimateHandler(uc *estimating.UseCase) *EstimateHandler {
	return &EstimateHandler{uc: uc}
}

// Materials godoc
// @Summary      Catálogo de materiales y costo base por unidad
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  estimate.MaterialPrice
// @Router       /api/estimates/materials [get]
func (h *EstimateHandler) Materials(c *fiber.Ctx) error {
	return c.JSON(estimate.Materials())
}

// Calculate godoc
// @Summary      Calcular una cotización sin guardarla
// @Description  Entradas numéricas inválidas valen 0. Máximo 10 áreas adicionales.
// @Tags         estimates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  estimate.Input  true  "Medidas, material, mano de obra y margen"
// @Success      200   {object}  estimate.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estimates/calculate [post]
func (h *EstimateHandler) Calculate(c *fiber.Ctx) error {
	var in estimate.Input
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Calculate(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar cotización
// @Tags         estimates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveEstimateRequest  true  "Nombre, cliente opcional y entradas"
// @Success      201   {object}  dto.EstimateResponse
// @Router       /api/estimates [post]
func (h *EstimateHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveEstimateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.EstimateResponse
// @Router       /api/estimates [get]
func (h *EstimateHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cotización
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.EstimateResponse
// @Router       /api/estimates/{id} [get]
func (h *EstimateHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         estimates
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cotización"
// @Success      204
// @Router       /api/estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveDraft godoc
// @Summary      Guardar el proyecto en curso del usuario
// @Tags         estimates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DraftRequest  true  "Nombre y entradas"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/estimates/draft [put]
func (h *EstimateHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.DraftRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SaveDraft(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LoadDraft godoc
// @Summary      Recuperar el proyecto en curso
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/draft [get]
func (h *EstimateHandler) LoadDraft(c *fiber.Ctx) error {
	out, err := h.uc.LoadDraft(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDraft godoc
// @Summary      Descartar el proyecto en curso
// @Tags         estimates
// @Security     Bearer
// @Success      204
// @Router       /api/estimates/draft [delete]
func (h *EstimateHandler) DeleteDraft(c *fiber.Ctx) error {
	if err := h.uc.DeleteDraft(c.UserContext(), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportProject godoc
// @Summary      Descargar el archivo de proyecto (JSON)
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.ProjectFile
// @Router       /api/estimates/{id}/project [get]
func (h *EstimateHandler) ExportProject(c *fiber.Ctx) error {
	f, err := h.uc.ExportProject(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f.Filename, f.ContentType, f.Data)
}

// ImportProject godoc
// @Summary      Abrir un archivo de proyecto
// @Description  Acepta multipart (campo file) o el JSON en el cuerpo. El resultado se recalcula.
// @Tags         estimates
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        file  formData  file  false  "Archivo de proyecto"
// @Success      200   {object}  dto.ProjectFile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estimates/import [post]
func (h *EstimateHandler) ImportProject(c *fiber.Ctx) error {
	data := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxProjectSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera 1 MB"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
		}
	}
	out, err := h.uc.ImportProject(data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QuotePDF godoc
// @Summary      Cotización en PDF
// @Tags         estimates
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Router       /api/estimates/{id}/pdf [get]
func (h *EstimateHandler) QuotePDF(c *fiber.Ctx) error {
	f, err := h.uc.QuotePDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f.Filename, f.ContentType, f.Data)
}
