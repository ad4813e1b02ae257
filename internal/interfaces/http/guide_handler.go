package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// GuideHandler guías de despacho de notas de venta.
type GuideHandler struct {
	uc  *dispatch.GuideUseCase
	log *logger.Logger
}

// NewGuideHandler construye el handler.
func NewGuideHandler(uc *dispatch.GuideUseCase, log *logger.Logger) *GuideHandler {
	return &GuideHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear guía de despacho
// @Tags         guias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Clave de idempotencia"
// @Param        body             body    dto.DispatchGuideRequest  true   "notaId y productos"
// @Success      201  {object}  dto.DispatchGuideResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/guias [post]
func (h *GuideHandler) Create(c *fiber.Ctx) error {
	var in dto.DispatchGuideRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByNote godoc
// @Summary      Guías de una nota de venta
// @Tags         guias
// @Security     Bearer
// @Produce      json
// @Param        notaId  path  string  true  "ID de la nota"
// @Success      200     {array}  dto.DispatchGuideResponse
// @Router       /api/guias/nota/{notaId} [get]
func (h *GuideHandler) ListByNote(c *fiber.Ctx) error {
	noteID, err := uuidParam(c, "notaId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListByNote(c.UserContext(), noteID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener guía
// @Tags         guias
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la guía"
// @Success      200  {object}  dto.DispatchGuideResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/guias/{id} [get]
func (h *GuideHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar guía
// @Description  Devuelve el stock despachado y vuelve a reservarlo si la nota sigue vigente.
// @Tags         guias
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la guía"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/guias/{id} [delete]
func (h *GuideHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
