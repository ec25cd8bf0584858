package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// ReconcileUseCase corrige derivas entre el estado local y el PSE: reenvía
// comprobantes con acuse pendiente o en error y sincroniza los contadores de
// serie con el último número conocido por el PSE. Todas las operaciones son
// idempotentes: correrlas dos veces deja el mismo estado.
type ReconcileUseCase struct {
	submit       *SubmitUseCase
	ventas       repository.VentaRepository
	notas        repository.NotaCreditoRepository
	correlativos repository.CorrelativoRepository
	movimientos  repository.MovimientoCajaRepository
	gateway      Gateway
	log          *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	submit *SubmitUseCase,
	ventas repository.VentaRepository,
	notas repository.NotaCreditoRepository,
	correlativos repository.CorrelativoRepository,
	movimientos repository.MovimientoCajaRepository,
	gateway Gateway,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		submit:       submit,
		ventas:       ventas,
		notas:        notas,
		correlativos: correlativos,
		movimientos:  movimientos,
		gateway:      gateway,
		log:          log,
	}
}

// ReconcileReport resume una corrida de conciliación: estado de los reenvíos
// más los totales del período (ventas, devoluciones, caja).
type ReconcileReport struct {
	Desde, Hasta time.Time

	VentasRevisadas int
	NotasRevisadas  int
	Reenviados      int
	Aceptados       int
	Rechazados      int
	Errores         int

	TotalVentas   decimal.Decimal
	TotalDevuelto decimal.Decimal
	CajaIngresos  decimal.Decimal
	CajaEgresos   decimal.Decimal
}

// ReconcilePeriod reenvía los comprobantes del período con acuse PENDIENTE,
// ERROR o RECHAZADO. Los ya ACEPTADOS y los NO_APLICA se saltan.
func (uc *ReconcileUseCase) ReconcilePeriod(ctx context.Context, desde, hasta time.Time) (*ReconcileReport, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	report := &ReconcileReport{Desde: desde, Hasta: hasta}

	ventas, err := uc.ventas.ListByPeriodo(desde, hasta)
	if err != nil {
		return nil, err
	}
	for _, v := range ventas {
		report.VentasRevisadas++
		if v.Estado == entity.EstadoAnulado || v.Estado == entity.EstadoCotizado {
			continue
		}
		report.TotalVentas = report.TotalVentas.Add(v.Total)
		if !reenviable(v.Sunat.Estado) {
			continue
		}
		report.Reenviados++
		uc.contar(report, uc.submit.SubmitVenta(ctx, v.ID), func() string {
			actual, err := uc.ventas.GetByID(v.ID)
			if err != nil || actual == nil {
				return entity.SunatError
			}
			return actual.Sunat.Estado
		})
	}

	notas, err := uc.notas.ListByPeriodo(desde, hasta)
	if err != nil {
		return nil, err
	}
	for _, nc := range notas {
		report.NotasRevisadas++
		if nc.Estado == entity.NotaCreditoAnulada {
			continue
		}
		report.TotalDevuelto = report.TotalDevuelto.Add(nc.TotalDevuelto)
		if !reenviable(nc.Sunat.Estado) {
			continue
		}
		report.Reenviados++
		uc.contar(report, uc.submit.SubmitNotaCredito(ctx, nc.ID), func() string {
			actual, err := uc.notas.GetByID(nc.ID)
			if err != nil || actual == nil {
				return entity.SunatError
			}
			return actual.Sunat.Estado
		})
	}

	if report.CajaIngresos, err = uc.movimientos.SumPorTipoEntre(desde, hasta, entity.MovimientoIngreso); err != nil {
		return nil, err
	}
	if report.CajaEgresos, err = uc.movimientos.SumPorTipoEntre(desde, hasta, entity.MovimientoEgreso); err != nil {
		return nil, err
	}

	uc.log.Info().
		Time("desde", desde).
		Time("hasta", hasta).
		Int("reenviados", report.Reenviados).
		Int("aceptados", report.Aceptados).
		Int("errores", report.Errores).
		Msg("conciliación de período completada")
	return report, nil
}

// SyncSeries alinea los contadores locales de las series electrónicas con el
// último número conocido por el PSE, solo hacia adelante: el contador local
// nunca retrocede.
func (uc *ReconcileUseCase) SyncSeries(ctx context.Context) error {
	series := []struct{ tipo, serie string }{
		{entity.ComprobanteBoleta, "B001"},
		{entity.ComprobanteFactura, "F001"},
		{entity.ComprobanteNotaCredito, "C001"},
	}
	for _, s := range series {
		remoto, err := uc.gateway.UltimoNumero(ctx, s.tipo, s.serie)
		if err != nil {
			uc.log.Warn().Err(err).Str("serie", s.serie).Msg("no se pudo consultar el último número del PSE")
			continue
		}
		local, err := uc.correlativos.Get(s.tipo, s.serie)
		if err != nil {
			return err
		}
		if local != nil && local.UltimoNumero >= remoto {
			continue
		}
		if err := uc.correlativos.SetUltimoNumero(s.tipo, s.serie, remoto); err != nil {
			return err
		}
		uc.log.Info().Str("serie", s.serie).Int("ultimo_numero", remoto).Msg("serie sincronizada con el PSE")
	}
	return nil
}

func (uc *ReconcileUseCase) contar(report *ReconcileReport, err error, estadoActual func() string) {
	if err != nil {
		report.Errores++
		return
	}
	switch estadoActual() {
	case entity.SunatAceptado:
		report.Aceptados++
	case entity.SunatRechazado:
		report.Rechazados++
	default:
		report.Errores++
	}
}

func reenviable(estado string) bool {
	return estado == entity.SunatPendiente || estado == entity.SunatError || estado == entity.SunatRechazado
}
