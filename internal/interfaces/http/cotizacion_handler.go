package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// maxUploadPDF tamaño máximo aceptado en upload-pdf.
const maxUploadPDF = 10 << 20

// CotizacionHandler cotizaciones, notas de venta y borradores (protegido).
type CotizacionHandler struct {
	uc  *quotation.CotizacionUseCase
	log *logger.Logger
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(uc *quotation.CotizacionUseCase, log *logger.Logger) *CotizacionHandler {
	return &CotizacionHandler{uc: uc, log: log}
}

// CreateOrUpdate godoc
// @Summary      Crear o editar cotización / nota de venta
// @Description  Sin _id crea un documento nuevo; con _id edita el existente.
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Clave de idempotencia"
// @Param        body             body    dto.CotizacionRequest  true   "Documento"
// @Success      200  {object}  dto.CotizacionResponse
// @Success      201  {object}  dto.CotizacionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones [post]
func (h *CotizacionHandler) CreateOrUpdate(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, created, err := h.uc.CreateOrUpdate(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// SaveDraft godoc
// @Summary      Guardar borrador
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CotizacionRequest  true  "Borrador (campos libres)"
// @Success      201   {object}  dto.CotizacionResponse
// @Router       /api/cotizaciones/borrador [post]
func (h *CotizacionHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.SaveDraft(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PromoteDraft godoc
// @Summary      Finalizar borrador
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/desde-borrador/{id} [post]
func (h *CotizacionHandler) PromoteDraft(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.PromoteDraft(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir cotización a nota de venta
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      201  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/convertir-a-nota [post]
func (h *CotizacionHandler) Convert(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ConvertToNote(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Anular nota de venta
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/anular [put]
func (h *CotizacionHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.CancelNote(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar documento
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del documento"
// @Param        body  body  dto.CotizacionRequest  true  "Documento"
// @Success      200   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [put]
func (h *CotizacionHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CotizacionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  false  "cotizacion | nota"
// @Param        estado  query  string  false  "borrador | finalizada | cancelada"
// @Success      200     {array}  dto.CotizacionResponse
// @Router       /api/cotizaciones [get]
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
	var in dto.CotizacionListRequest
	if err := queryAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener documento
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [get]
func (h *CotizacionHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF regenerado
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/pdf [get]
func (h *CotizacionHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, name, err := h.uc.RenderPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

// Profit godoc
// @Summary      Ganancia del documento
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ProfitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/ganancia [get]
func (h *CotizacionHandler) Profit(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Profit(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [delete]
func (h *CotizacionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// UploadPDF godoc
// @Summary      Subir PDF de un documento
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true  "PDF"
// @Param        cotizacionId  formData  string  true  "ID del documento"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/upload-pdf [post]
func (h *CotizacionHandler) UploadPDF(c *fiber.Ctx) error {
	id := c.FormValue("cotizacionId")
	if !isUUID(id) {
		return writeError(c, h.log, domain.Invalid("cotizacionId inválido"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, h.log, domain.Invalid("falta el archivo"))
	}
	if fh.Size > maxUploadPDF {
		return writeError(c, h.log, domain.Invalid("el archivo supera %d MB", maxUploadPDF>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("abrir archivo: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadPDF))
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("leer archivo: %w", err))
	}
	out, err := h.uc.AttachPDF(c.UserContext(), id, data)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
