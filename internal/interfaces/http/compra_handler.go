package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/application/purchases"
)

// CompraHandler maneja compras a proveedores.
type CompraHandler struct {
	uc *purchases.CompraUseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *purchases.CompraUseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create registra una compra y suma stock.
// POST /api/compras
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := purchases.CreateInput{
		ProveedorNombre:   in.ProveedorNombre,
		NumeroComprobante: in.NumeroComprobante,
		UsuarioID:         GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, purchases.ItemCompra{
			ProductoID:    it.ProductoID,
			Cantidad:      it.Cantidad,
			CostoUnitario: it.CostoUnitario,
		})
	}
	compra, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(compra)
}

// Annul anula una compra revirtiendo el stock.
// POST /api/compras/:id/anular
func (h *CompraHandler) Annul(c *fiber.Ctx) error {
	compra, err := h.uc.Annul(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(compra)
}

// GetByID obtiene una compra completa.
// GET /api/compras/:id
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
	compra, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(compra)
}

// List lista compras paginadas.
// GET /api/compras
func (h *CompraHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
