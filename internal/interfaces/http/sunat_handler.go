package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
	"github.com/tu-usuario/libreria-pos/internal/domain"
)

// SunatHandler expone el reenvío y la conciliación de comprobantes electrónicos.
type SunatHandler struct {
	submit    *billing.SubmitUseCase
	reconcile *billing.ReconcileUseCase
}

// NewSunatHandler construye el handler.
func NewSunatHandler(submit *billing.SubmitUseCase, reconcile *billing.ReconcileUseCase) *SunatHandler {
	return &SunatHandler{submit: submit, reconcile: reconcile}
}

// ResubmitVenta reintenta el envío de una venta pendiente, rechazada o con error.
// POST /api/ventas/:id/sunat
func (h *SunatHandler) ResubmitVenta(c *fiber.Ctx) error {
	if err := h.submit.SubmitVenta(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"enviado": true})
}

// ResubmitNotaCredito reintenta el envío de una nota de crédito.
// POST /api/devoluciones/:id/sunat
func (h *SunatHandler) ResubmitNotaCredito(c *fiber.Ctx) error {
	if err := h.submit.SubmitNotaCredito(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"enviado": true})
}

// Reconcile reenvía todos los comprobantes no aceptados del período.
// POST /api/sunat/conciliar?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (h *SunatHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	desde, err := time.Parse("2006-01-02", in.Desde)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe tener formato YYYY-MM-DD"})
	}
	hasta, err := time.Parse("2006-01-02", in.Hasta)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe tener formato YYYY-MM-DD"})
	}
	// El período cubre el día "hasta" completo.
	hasta = hasta.Add(24*time.Hour - time.Nanosecond)

	report, err := h.reconcile.ReconcilePeriod(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// SyncSeries alinea los correlativos locales con el último número aceptado por el PSE.
// POST /api/sunat/sincronizar
func (h *SunatHandler) SyncSeries(c *fiber.Ctx) error {
	if err := h.reconcile.SyncSeries(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sincronizado": true})
}
