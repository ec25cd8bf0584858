package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/domain"
)

// respondError traduce errores de dominio a status HTTP. Un error no mapeado
// es 500 con el mensaje tal cual.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrCantidadFraccionaria):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrProductoNoEncontrado),
		errors.Is(err, domain.ErrUsuarioNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrCajaCerrada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_CERRADA", Message: err.Error()})
	case errors.Is(err, domain.ErrCajaYaAbierta):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_YA_ABIERTA", Message: err.Error()})
	case errors.Is(err, domain.ErrSerieNoConfigurada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SERIE_NO_CONFIGURADA", Message: err.Error()})
	case errors.Is(err, domain.ErrVentaAnulada),
		errors.Is(err, domain.ErrVentaNoAnulable),
		errors.Is(err, domain.ErrVentaDevueltaTotal),
		errors.Is(err, domain.ErrPlazoDevolucionVencido),
		errors.Is(err, domain.ErrDevolucionExcedeVendido),
		errors.Is(err, domain.ErrDevolucionAnulada),
		errors.Is(err, domain.ErrCompraAnulada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
