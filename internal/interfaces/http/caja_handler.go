package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// CajaHandler maneja sesiones y movimientos de caja.
type CajaHandler struct {
	uc *cash.CajaUseCase
}

// NewCajaHandler construye el handler.
func NewCajaHandler(uc *cash.CajaUseCase) *CajaHandler {
	return &CajaHandler{uc: uc}
}

// Abrir abre una sesión de caja para el usuario autenticado.
// POST /api/caja/abrir
func (h *CajaHandler) Abrir(c *fiber.Ctx) error {
	var in dto.AperturaCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Open(c.Context(), GetUserID(c), in.MontoInicial)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSesionCajaResponse(s))
}

// Cerrar cierra la sesión abierta comparando contra el conteo físico.
// POST /api/caja/cerrar
func (h *CajaHandler) Cerrar(c *fiber.Ctx) error {
	var in dto.CierreCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Close(c.Context(), GetUserID(c), in.MontoReal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSesionCajaResponse(s))
}

// Movimiento registra un INGRESO o EGRESO manual.
// POST /api/caja/movimientos
func (h *CajaHandler) Movimiento(c *fiber.Ctx) error {
	var in dto.MovimientoCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.Record(c.Context(), GetUserID(c), in.Tipo, in.Concepto, in.Monto, "")
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimientoCajaResponse{
		ID:       m.ID,
		Tipo:     m.Tipo,
		Concepto: m.Concepto,
		Monto:    m.Monto,
		Fecha:    m.Fecha.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Balance devuelve el resumen de la sesión abierta.
// GET /api/caja/balance
func (h *CajaHandler) Balance(c *fiber.Ctx) error {
	b, err := h.uc.Balance(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceCajaResponse{
		Inicial:  b.Inicial,
		Ingresos: b.Ingresos,
		Egresos:  b.Egresos,
		Saldo:    b.Saldo,
	})
}

// Movimientos lista los movimientos de la sesión abierta.
// GET /api/caja/movimientos
func (h *CajaHandler) Movimientos(c *fiber.Ctx) error {
	movs, err := h.uc.Movimientos(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aMovimientosResponse(movs))
}

// MovimientosDelDia lista los movimientos del día de todas las sesiones.
// GET /api/caja/movimientos/dia
func (h *CajaHandler) MovimientosDelDia(c *fiber.Ctx) error {
	movs, err := h.uc.MovimientosDelDia(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aMovimientosResponse(movs))
}

func aMovimientosResponse(movs []*entity.MovimientoCaja) []dto.MovimientoCajaResponse {
	resp := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		resp = append(resp, dto.MovimientoCajaResponse{
			ID:           m.ID,
			Tipo:         m.Tipo,
			Concepto:     m.Concepto,
			Monto:        m.Monto,
			ReferenciaID: m.ReferenciaID,
			Fecha:        m.Fecha.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return resp
}
