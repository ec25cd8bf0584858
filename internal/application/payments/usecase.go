package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/ports"
	"github.com/tu-usuario/libreria-pos/internal/application/sequence"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// CobranzaUseCase registra amortizaciones (pagos) sobre ventas al crédito.
// A diferencia de los efectos de caja de emisión/anulación, un pago en
// efectivo con caja cerrada se RECHAZA: el dinero está entrando en este
// momento y debe quedar en una sesión.
type CobranzaUseCase struct {
	txRunner ports.TxRunner
	caja     *cash.CajaUseCase
	amorts   repository.AmortizacionRepository

	requiereCajaAbierta bool
	log                 *logger.Logger
}

// NewCobranzaUseCase construye el caso de uso.
func NewCobranzaUseCase(
	txRunner ports.TxRunner,
	caja *cash.CajaUseCase,
	amorts repository.AmortizacionRepository,
	requiereCajaAbierta bool,
	log *logger.Logger,
) *CobranzaUseCase {
	return &CobranzaUseCase{
		txRunner:            txRunner,
		caja:                caja,
		amorts:              amorts,
		requiereCajaAbierta: requiereCajaAbierta,
		log:                 log,
	}
}

// RegisterPayment aplica un pago a una venta: crea la amortización, aumenta
// MontoPagado y reduce SaldoPendiente; al llegar a saldo cero la venta pasa a
// PAGADO_TOTAL. El monto no puede exceder el saldo pendiente.
func (uc *CobranzaUseCase) RegisterPayment(ctx context.Context, ventaID string, monto decimal.Decimal, metodoPago, observacion, usuarioID string) (*entity.Amortizacion, error) {
	if ventaID == "" || usuarioID == "" || !monto.IsPositive() || metodoPago == "" {
		return nil, domain.ErrInvalidInput
	}

	if metodoPago == entity.MetodoPagoEfectivo && uc.requiereCajaAbierta {
		s, err := uc.caja.SesionAbierta(ctx, usuarioID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrCajaCerrada
		}
	}

	var amort *entity.Amortizacion
	var venta *entity.Venta
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		v, err := r.Ventas.GetByID(ventaID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if v.Estado == entity.EstadoAnulado {
			return domain.ErrVentaAnulada
		}
		if v.Estado == entity.EstadoCotizado {
			return domain.ErrInvalidInput
		}
		if monto.GreaterThan(v.SaldoPendiente) {
			return domain.ErrInvalidInput
		}

		amort = &entity.Amortizacion{
			ID:          uuid.New().String(),
			VentaID:     v.ID,
			Monto:       monto,
			MetodoPago:  metodoPago,
			Observacion: observacion,
			UsuarioID:   usuarioID,
			Fecha:       time.Now(),
		}
		if err := r.Amortizaciones.Create(amort); err != nil {
			return err
		}

		v.MontoPagado = v.MontoPagado.Add(monto)
		v.SaldoPendiente = v.SaldoPendiente.Sub(monto)
		if v.SaldoPendiente.IsZero() && v.Estado == entity.EstadoEmitido {
			v.Estado = entity.EstadoPagadoTotal
		}
		if err := r.Ventas.Update(v); err != nil {
			return err
		}
		venta = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	if metodoPago == entity.MetodoPagoEfectivo {
		ref := sequence.Identificador(venta.Serie, venta.Numero)
		if _, cajaErr := uc.caja.Record(ctx, usuarioID, entity.MovimientoIngreso,
			fmt.Sprintf("COBRANZA VENTA %s", ref), monto, venta.ID); cajaErr != nil {
			uc.log.Warn().Err(cajaErr).Str("venta_id", venta.ID).Msg("ingreso a caja no registrado")
		}
	}

	uc.log.Info().
		Str("venta_id", venta.ID).
		Str("monto", monto.StringFixed(2)).
		Str("saldo", venta.SaldoPendiente.StringFixed(2)).
		Msg("pago registrado")
	return amort, nil
}

// ListByVenta lista las amortizaciones de una venta.
func (uc *CobranzaUseCase) ListByVenta(ctx context.Context, ventaID string) ([]*entity.Amortizacion, error) {
	return uc.amorts.ListByVenta(ventaID)
}
