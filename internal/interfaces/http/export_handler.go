package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/export"
)

// ExportHandler descargas CSV, XLSX o PDF de los listados.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar un listado
// @Description  Un archivo por request: <dataset>_<YYYY-MM-DD>.<ext>. CSV con todos los campos entre comillas.
// @Tags         exports
// @Security     Bearer
// @Produce      octet-stream
// @Param        dataset  path   string  true   "invoices, customers, employees, time_entries, materials, budget"
// @Param        format   query  string  false  "csv (default), xlsx, pdf"
// @Param        from     query  string  false  "YYYY-MM-DD (time_entries)"
// @Param        to       query  string  false  "YYYY-MM-DD (time_entries)"
// @Param        period   query  string  false  "YYYY-MM (budget)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/{dataset} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	f, err := h.uc.Export(c.UserContext(), GetCompanyID(c), c.Params("dataset"), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f.Filename, f.ContentType, f.Data)
}
