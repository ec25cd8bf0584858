package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/catalog"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
)

// ProductoHandler maneja el catálogo de productos.
type ProductoHandler struct {
	uc *catalog.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *catalog.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Create da de alta un producto (el stock inicial entra por kardex).
// POST /api/productos
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.Context(), catalog.CreateInput{
		Nombre:        in.Nombre,
		Marca:         in.Marca,
		UnidadMedida:  in.UnidadMedida,
		PrecioVenta:   in.PrecioVenta,
		StockInicial:  in.StockInicial,
		StockMinimo:   in.StockMinimo,
		AfectacionIGV: in.AfectacionIGV,
		EsServicio:    in.EsServicio,
		UsuarioID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID obtiene un producto.
// GET /api/productos/:id
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// List lista productos paginados.
// GET /api/productos
func (h *ProductoHandler) List(c *fiber.Ctx) error {
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
