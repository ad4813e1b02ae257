package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// PurchaseHandler facturas de compra (ingreso de mercadería).
type PurchaseHandler struct {
	uc  *purchasing.PurchaseUseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar factura de compra
// @Description  Suma el stock de cada producto; los que no existen se crean.
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                      false  "Clave de idempotencia"
// @Param        body             body    dto.PurchaseInvoiceRequest  true   "Factura"
// @Success      201  {object}  dto.PurchaseInvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/facturas [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseInvoiceRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas de compra
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        mes     query  string  false  "Mes (YYYY-MM)"
// @Param        pagina  query  int     false  "Página"  default(1)
// @Param        limite  query  int     false  "Límite"  default(10)
// @Success      200     {object}  dto.PurchaseInvoiceListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/facturas [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var in dto.PurchaseInvoiceListRequest
	if err := queryAndValidate(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura de compra
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.PurchaseInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
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
