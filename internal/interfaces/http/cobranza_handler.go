package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/application/payments"
)

// CobranzaHandler maneja pagos sobre ventas al crédito.
type CobranzaHandler struct {
	uc *payments.CobranzaUseCase
}

// NewCobranzaHandler construye el handler.
func NewCobranzaHandler(uc *payments.CobranzaUseCase) *CobranzaHandler {
	return &CobranzaHandler{uc: uc}
}

// RegisterPayment aplica un pago a una venta.
// POST /api/ventas/:id/pagos
func (h *CobranzaHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.CobranzaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	amort, err := h.uc.RegisterPayment(c.Context(), c.Params("id"), in.Monto, in.MetodoPago, in.Observacion, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(amort)
}

// ListByVenta lista los pagos de una venta.
// GET /api/ventas/:id/pagos
func (h *CobranzaHandler) ListByVenta(c *fiber.Ctx) error {
	list, err := h.uc.ListByVenta(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
