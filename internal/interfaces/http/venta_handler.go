package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/application/sales"
)

// VentaHandler maneja emisión, consulta y anulación de comprobantes de venta.
type VentaHandler struct {
	uc *sales.VentaUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *sales.VentaUseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create emite un comprobante (boleta, factura o nota de venta).
// POST /api/ventas
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := sales.CreateInput{
		TipoComprobante: in.TipoComprobante,
		FormaPago:       in.FormaPago,
		MetodoPago:      in.MetodoPago,
		DiasCredito:     in.DiasCredito,
		Cliente: sales.ClienteInput{
			NumeroDocumento: in.Cliente.NumeroDocumento,
			Denominacion:    in.Cliente.Denominacion,
			Direccion:       in.Cliente.Direccion,
			Telefono:        in.Cliente.Telefono,
		},
		UsuarioID: GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, sales.ItemInput{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}

	result, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVentaResponse(result.Venta, result.CashWarning))
}

// Quote genera una cotización (sin stock, sin caja, sin PSE).
// POST /api/cotizaciones
func (h *VentaHandler) Quote(c *fiber.Ctx) error {
	var in dto.CreateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := sales.QuoteInput{
		Cliente: sales.ClienteInput{
			NumeroDocumento: in.Cliente.NumeroDocumento,
			Denominacion:    in.Cliente.Denominacion,
			Direccion:       in.Cliente.Direccion,
			Telefono:        in.Cliente.Telefono,
		},
		UsuarioID: GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, sales.ItemInput{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}

	venta, err := h.uc.Quote(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVentaResponse(venta, ""))
}

// GetByID obtiene el comprobante completo.
// GET /api/ventas/:id
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(venta, ""))
}

// List lista los comprobantes emitidos en un período.
// GET /api/ventas?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (h *VentaHandler) List(c *fiber.Ctx) error {
	desde, err := time.Parse("2006-01-02", c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe tener formato YYYY-MM-DD"})
	}
	hasta, err := time.Parse("2006-01-02", c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe tener formato YYYY-MM-DD"})
	}
	hasta = hasta.Add(24*time.Hour - time.Nanosecond)

	ventas, err := h.uc.ListByPeriodo(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, dto.ToVentaResponse(v, ""))
	}
	return c.JSON(out)
}

// Void anula un comprobante restituyendo stock.
// POST /api/ventas/:id/anular
func (h *VentaHandler) Void(c *fiber.Ctx) error {
	result, err := h.uc.Void(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(result.Venta, result.CashWarning))
}
