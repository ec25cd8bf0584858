package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/application/returns"
)

// DevolucionHandler maneja devoluciones (notas de crédito).
type DevolucionHandler struct {
	uc *returns.DevolucionUseCase
}

// NewDevolucionHandler construye el handler.
func NewDevolucionHandler(uc *returns.DevolucionUseCase) *DevolucionHandler {
	return &DevolucionHandler{uc: uc}
}

// Create procesa una devolución emitiendo una nota de crédito.
// POST /api/devoluciones
func (h *DevolucionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := returns.CreateInput{
		VentaID:          in.VentaID,
		MotivoDevolucion: in.MotivoDevolucion,
		Observaciones:    in.Observaciones,
		MetodoReembolso:  in.MetodoReembolso,
		UsuarioID:        GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, returns.ItemDevolucion{
			ProductoID: it.ProductoID,
			Cantidad:   it.Cantidad,
		})
	}

	result, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToNotaCreditoResponse(result.NotaCredito, result.CashWarning))
}

// GetByID obtiene una nota de crédito completa.
// GET /api/devoluciones/:id
func (h *DevolucionHandler) GetByID(c *fiber.Ctx) error {
	nc, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToNotaCreditoResponse(nc, ""))
}

// Annul anula una nota de crédito revirtiendo la restitución de stock.
// POST /api/devoluciones/:id/anular
func (h *DevolucionHandler) Annul(c *fiber.Ctx) error {
	nc, err := h.uc.Annul(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToNotaCreditoResponse(nc, ""))
}

// ListByVenta lista las notas de crédito de una venta.
// GET /api/ventas/:id/devoluciones
func (h *DevolucionHandler) ListByVenta(c *fiber.Ctx) error {
	notas, err := h.uc.ListByVenta(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.NotaCreditoResponse, 0, len(notas))
	for _, nc := range notas {
		resp = append(resp, dto.ToNotaCreditoResponse(nc, ""))
	}
	return c.JSON(resp)
}
