package billing

import (
	"context"
	"time"

	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// SubmitUseCase envía comprobantes electrónicos al PSE y registra el acuse.
// El envío siempre ocurre sobre un comprobante ya emitido y con commit hecho:
// el resultado solo muta el estado de acuse (PENDIENTE → ACEPTADO/RECHAZADO/
// ERROR), nunca el comprobante en sí. Reenviar es idempotente: un comprobante
// ya ACEPTADO no se vuelve a enviar.
type SubmitUseCase struct {
	ventas  repository.VentaRepository
	notas   repository.NotaCreditoRepository
	gateway Gateway
	log     *logger.Logger
}

// NewSubmitUseCase construye el caso de uso.
func NewSubmitUseCase(
	ventas repository.VentaRepository,
	notas repository.NotaCreditoRepository,
	gateway Gateway,
	log *logger.Logger,
) *SubmitUseCase {
	return &SubmitUseCase{ventas: ventas, notas: notas, gateway: gateway, log: log}
}

// SubmitVenta envía una venta electrónica al PSE y guarda el acuse.
// Comprobantes NO_APLICA o ya ACEPTADOS no se envían.
func (uc *SubmitUseCase) SubmitVenta(ctx context.Context, ventaID string) error {
	v, err := uc.ventas.GetByID(ventaID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if !v.EsElectronico() || v.Sunat.Estado == entity.SunatNoAplica {
		return domain.ErrInvalidInput
	}
	if v.Sunat.Estado == entity.SunatAceptado {
		return nil
	}

	acuse, err := uc.gateway.EnviarVenta(ctx, v)
	aplicarAcuse(&v.Sunat, acuse, err)
	if updErr := uc.ventas.Update(v); updErr != nil {
		return updErr
	}
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("venta_id", v.ID).
		Str("estado_sunat", v.Sunat.Estado).
		Msg("acuse del PSE registrado")
	return nil
}

// SubmitNotaCredito envía una nota de crédito electrónica al PSE, referenciando
// el comprobante afectado, y guarda el acuse.
func (uc *SubmitUseCase) SubmitNotaCredito(ctx context.Context, notaCreditoID string) error {
	nc, err := uc.notas.GetByID(notaCreditoID)
	if err != nil {
		return err
	}
	if nc == nil {
		return domain.ErrNotFound
	}
	if nc.Sunat.Estado == entity.SunatNoAplica {
		return domain.ErrInvalidInput
	}
	if nc.Sunat.Estado == entity.SunatAceptado {
		return nil
	}

	original, err := uc.ventas.GetByID(nc.VentaOriginalID)
	if err != nil {
		return err
	}
	if original == nil {
		return domain.ErrNotFound
	}

	acuse, err := uc.gateway.EnviarNotaCredito(ctx, nc, original)
	aplicarAcuse(&nc.Sunat, acuse, err)
	if updErr := uc.notas.Update(nc); updErr != nil {
		return updErr
	}
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("nota_credito_id", nc.ID).
		Str("estado_sunat", nc.Sunat.Estado).
		Msg("acuse del PSE registrado")
	return nil
}

// aplicarAcuse traduce el resultado del gateway al estado de acuse local.
// Fallo de comunicación → ERROR (reintentable). Con respuesta del PSE, el
// estado del payload se guarda tal cual (ACEPTADO, PENDIENTE, RECHAZADO);
// una respuesta sin estado cuenta como rechazo.
func aplicarAcuse(s *entity.SunatEnvio, acuse *Acuse, err error) {
	now := time.Now()
	s.FechaEnvio = &now
	if err != nil {
		s.Estado = entity.SunatError
		s.MensajeError = err.Error()
		return
	}
	estado := acuse.Estado
	if estado == "" {
		estado = entity.SunatRechazado
	}
	s.Estado = estado
	if estado == entity.SunatAceptado || estado == entity.SunatPendiente {
		s.MensajeError = ""
	} else {
		s.MensajeError = acuse.Mensaje
	}
	s.Hash = acuse.Hash
	s.XMLURL = acuse.XMLURL
	s.CdrURL = acuse.CdrURL
	s.PdfURL = acuse.PdfURL
}
