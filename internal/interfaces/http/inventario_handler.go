package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// InventarioHandler maneja ajustes manuales de stock y consulta del kardex.
type InventarioHandler struct {
	uc *inventory.MovementUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventory.MovementUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Ajuste registra un AJUSTE manual de stock (cantidad con signo).
// POST /api/inventario/ajustes
func (h *InventarioHandler) Ajuste(c *fiber.Ctx) error {
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	motivo := in.Motivo
	if motivo == "" {
		motivo = "AJUSTE MANUAL"
	}
	k, err := h.uc.RegisterMovement(c.Context(), inventory.Delta{
		ProductoID: in.ProductoID,
		Tipo:       entity.KardexAjuste,
		Cantidad:   in.Cantidad,
		Motivo:     motivo,
		UsuarioID:  GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(k)
}

// Kardex lista el libro de inventario de un producto.
// GET /api/inventario/kardex/:productoId
func (h *InventarioHandler) Kardex(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.History(c.Context(), c.Params("productoId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
