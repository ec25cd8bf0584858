package returns

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/application/ports"
	"github.com/tu-usuario/libreria-pos/internal/application/sequence"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// Submitter envía notas de crédito electrónicas al PSE después del commit.
type Submitter interface {
	SubmitNotaCredito(ctx context.Context, notaCreditoID string) error
}

// DevolucionUseCase procesa devoluciones emitiendo notas de crédito contra una
// venta anterior. Nunca edita la venta original: agrega ENTRADAs compensatorias
// al kardex y actualiza solo su estado de liquidación.
type DevolucionUseCase struct {
	txRunner   ports.TxRunner
	inventario *inventory.MovementUseCase
	caja       *cash.CajaUseCase
	notas      repository.NotaCreditoRepository
	submitter  Submitter

	sunatActiva bool
	politica    config.PoliticaConfig
	log         *logger.Logger
}

// NewDevolucionUseCase construye el caso de uso.
func NewDevolucionUseCase(
	txRunner ports.TxRunner,
	inventario *inventory.MovementUseCase,
	caja *cash.CajaUseCase,
	notas repository.NotaCreditoRepository,
	submitter Submitter,
	sunatActiva bool,
	politica config.PoliticaConfig,
	log *logger.Logger,
) *DevolucionUseCase {
	return &DevolucionUseCase{
		txRunner:    txRunner,
		inventario:  inventario,
		caja:        caja,
		notas:       notas,
		submitter:   submitter,
		sunatActiva: sunatActiva,
		politica:    politica,
		log:         log,
	}
}

// ItemDevolucion línea a devolver. El precio NO se recibe del caller: siempre
// se toma de la línea original de la venta.
type ItemDevolucion struct {
	ProductoID string
	Cantidad   decimal.Decimal
}

// CreateInput entrada para procesar una devolución.
type CreateInput struct {
	VentaID          string
	MotivoDevolucion string
	Observaciones    string
	MetodoReembolso  string
	Items            []ItemDevolucion
	UsuarioID        string
}

// CreateResult resultado de la devolución. CashWarning queda no vacío si la
// nota de crédito se emitió pero el egreso de caja por el reembolso falló.
type CreateResult struct {
	NotaCredito *entity.NotaCredito
	CashWarning string
}

// Create procesa una devolución: valida ventana y cantidades (lo acumulado
// devuelto nunca excede lo vendido por línea), y en una transacción asigna
// número de nota de crédito, restituye stock con kardex y persiste la nota,
// actualizando el estado de liquidación de la venta (DEVUELTO_PARCIAL o
// DEVUELTO_TOTAL) y recortando su saldo pendiente con piso en cero.
func (uc *DevolucionUseCase) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.VentaID == "" || input.UsuarioID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch input.MotivoDevolucion {
	case entity.MotivoProductoDefectuoso, entity.MotivoErrorFacturacion,
		entity.MotivoClienteDesiste, entity.MotivoOtro:
	default:
		return nil, domain.ErrInvalidInput
	}
	for _, it := range input.Items {
		if it.ProductoID == "" || !it.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	var nc *entity.NotaCredito
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		venta, err := r.Ventas.GetByID(input.VentaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}
		switch venta.Estado {
		case entity.EstadoAnulado:
			return domain.ErrVentaAnulada
		case entity.EstadoDevueltoTotal:
			return domain.ErrVentaDevueltaTotal
		case entity.EstadoCotizado:
			return domain.ErrInvalidInput
		}
		if time.Since(venta.FechaEmision) > time.Duration(uc.politica.DiasDevolucion)*24*time.Hour {
			return domain.ErrPlazoDevolucionVencido
		}

		devuelto, err := uc.devueltoPorProducto(r, venta.ID)
		if err != nil {
			return err
		}

		serie, err := sequence.ResolveSerie(entity.ComprobanteNotaCredito, uc.sunatActiva)
		if err != nil {
			return err
		}
		numero, err := r.Correlativos.NextNumber(entity.ComprobanteNotaCredito, serie)
		if err != nil {
			return err
		}
		refNC := sequence.Identificador(serie, numero)
		refVenta := sequence.Identificador(venta.Serie, venta.Numero)

		now := time.Now()
		nc = &entity.NotaCredito{
			ID:               uuid.New().String(),
			VentaOriginalID:  venta.ID,
			Serie:            serie,
			Numero:           numero,
			FechaEmision:     now,
			MotivoDevolucion: input.MotivoDevolucion,
			Observaciones:    input.Observaciones,
			MetodoReembolso:  input.MetodoReembolso,
			Estado:           entity.NotaCreditoProcesada,
			UsuarioID:        input.UsuarioID,
			FechaCreacion:    now,
		}
		if venta.EsElectronico() && uc.sunatActiva {
			nc.Sunat.Estado = entity.SunatPendiente
		} else {
			nc.Sunat.Estado = entity.SunatNoAplica
		}

		total := decimal.Zero
		for _, it := range input.Items {
			linea := lineaDe(venta, it.ProductoID)
			if linea == nil {
				return domain.ErrInvalidInput
			}
			restante := linea.Cantidad.Sub(devuelto[it.ProductoID])
			if it.Cantidad.GreaterThan(restante) {
				return domain.ErrDevolucionExcedeVendido
			}
			// el reingreso al kardex es en unidades enteras
			if linea.UnidadMedida != "ZZ" && !it.Cantidad.IsInteger() {
				return domain.ErrCantidadFraccionaria
			}

			subtotal := it.Cantidad.Mul(linea.PrecioUnitario).Round(2)
			total = total.Add(subtotal)
			devuelto[it.ProductoID] = devuelto[it.ProductoID].Add(it.Cantidad)

			nc.Detalles = append(nc.Detalles, &entity.DetalleNotaCredito{
				ID:             uuid.New().String(),
				NotaCreditoID:  nc.ID,
				ProductoID:     it.ProductoID,
				Descripcion:    linea.Descripcion,
				Cantidad:       it.Cantidad,
				PrecioUnitario: linea.PrecioUnitario,
				Subtotal:       subtotal,
			})

			if linea.UnidadMedida != "ZZ" {
				_, err := uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
					ProductoID: it.ProductoID,
					Tipo:       entity.KardexEntrada,
					Cantidad:   int(it.Cantidad.IntPart()),
					Motivo:     fmt.Sprintf("DEVOLUCIÓN NC %s (VENTA %s)", refNC, refVenta),
					UsuarioID:  input.UsuarioID,
				})
				if err != nil {
					return err
				}
			}
		}
		nc.TotalDevuelto = total

		if err := r.NotasCredito.Create(nc); err != nil {
			return err
		}

		if todoDevuelto(venta, devuelto) {
			venta.Estado = entity.EstadoDevueltoTotal
		} else {
			venta.Estado = entity.EstadoDevueltoParcial
		}
		// una devolución sobre venta al crédito reduce la deuda, piso en cero
		venta.SaldoPendiente = venta.SaldoPendiente.Sub(total)
		if venta.SaldoPendiente.IsNegative() {
			venta.SaldoPendiente = decimal.Zero
		}
		return r.Ventas.Update(venta)
	})
	if err != nil {
		return nil, err
	}

	result := &CreateResult{NotaCredito: nc}
	if input.MetodoReembolso == entity.MetodoPagoEfectivo {
		ref := sequence.Identificador(nc.Serie, nc.Numero)
		_, cajaErr := uc.caja.Record(ctx, input.UsuarioID, entity.MovimientoEgreso,
			fmt.Sprintf("DEVOLUCIÓN NC %s", ref), nc.TotalDevuelto, nc.ID)
		if cajaErr != nil {
			result.CashWarning = fmt.Sprintf("nota de crédito emitida pero el egreso de caja no se registró: %v", cajaErr)
			uc.log.Warn().Err(cajaErr).Str("nota_credito_id", nc.ID).Msg("egreso de caja no registrado")
		}
	}

	if nc.Sunat.Estado == entity.SunatPendiente && uc.submitter != nil {
		if subErr := uc.submitter.SubmitNotaCredito(ctx, nc.ID); subErr != nil {
			uc.log.Warn().Err(subErr).Str("nota_credito_id", nc.ID).Msg("envío al PSE falló")
		} else if actualizada, err := uc.notas.GetByID(nc.ID); err == nil && actualizada != nil {
			result.NotaCredito = actualizada
		}
	}

	uc.log.Info().
		Str("nota_credito_id", nc.ID).
		Str("comprobante", sequence.Identificador(nc.Serie, nc.Numero)).
		Str("total_devuelto", nc.TotalDevuelto.StringFixed(2)).
		Msg("devolución procesada")
	return result, nil
}

// Annul anula una nota de crédito: revierte la restitución de stock con
// SALIDAs compensatorias y recalcula el estado de liquidación de la venta.
func (uc *DevolucionUseCase) Annul(ctx context.Context, notaCreditoID, usuarioID string) (*entity.NotaCredito, error) {
	if notaCreditoID == "" || usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}

	var nc *entity.NotaCredito
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		n, err := r.NotasCredito.GetByID(notaCreditoID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Estado == entity.NotaCreditoAnulada {
			return domain.ErrDevolucionAnulada
		}

		venta, err := r.Ventas.GetByID(n.VentaOriginalID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}

		refNC := sequence.Identificador(n.Serie, n.Numero)
		for _, det := range n.Detalles {
			linea := lineaDe(venta, det.ProductoID)
			if linea != nil && linea.UnidadMedida == "ZZ" {
				continue
			}
			_, err := uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
				ProductoID: det.ProductoID,
				Tipo:       entity.KardexSalida,
				Cantidad:   int(det.Cantidad.IntPart()),
				Motivo:     fmt.Sprintf("ANULACIÓN NC %s", refNC),
				UsuarioID:  usuarioID,
			})
			if err != nil {
				return err
			}
		}

		n.Estado = entity.NotaCreditoAnulada
		if err := r.NotasCredito.Update(n); err != nil {
			return err
		}

		// Recalcular liquidación de la venta con la NC ya anulada fuera del acumulado.
		devuelto, err := uc.devueltoPorProducto(r, venta.ID)
		if err != nil {
			return err
		}
		hayDevuelto := false
		for _, q := range devuelto {
			if q.IsPositive() {
				hayDevuelto = true
				break
			}
		}
		switch {
		case !hayDevuelto:
			venta.SaldoPendiente = venta.Total.Sub(venta.MontoPagado)
			if venta.SaldoPendiente.IsNegative() {
				venta.SaldoPendiente = decimal.Zero
			}
			if venta.SaldoPendiente.IsZero() {
				venta.Estado = entity.EstadoPagadoTotal
			} else {
				venta.Estado = entity.EstadoEmitido
			}
		case todoDevuelto(venta, devuelto):
			venta.Estado = entity.EstadoDevueltoTotal
		default:
			venta.Estado = entity.EstadoDevueltoParcial
		}
		if err := r.Ventas.Update(venta); err != nil {
			return err
		}
		nc = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("nota_credito_id", nc.ID).
		Str("comprobante", sequence.Identificador(nc.Serie, nc.Numero)).
		Msg("nota de crédito anulada")
	return nc, nil
}

// Get carga una nota de crédito completa.
func (uc *DevolucionUseCase) Get(ctx context.Context, notaCreditoID string) (*entity.NotaCredito, error) {
	nc, err := uc.notas.GetByID(notaCreditoID)
	if err != nil {
		return nil, err
	}
	if nc == nil {
		return nil, domain.ErrNotFound
	}
	return nc, nil
}

// ListByVenta lista las notas de crédito de una venta.
func (uc *DevolucionUseCase) ListByVenta(ctx context.Context, ventaID string) ([]*entity.NotaCredito, error) {
	return uc.notas.ListByVenta(ventaID)
}

// devueltoPorProducto acumula las cantidades ya devueltas por producto sobre
// las notas de crédito no anuladas de la venta.
func (uc *DevolucionUseCase) devueltoPorProducto(r ports.TxRepos, ventaID string) (map[string]decimal.Decimal, error) {
	previas, err := r.NotasCredito.ListByVenta(ventaID)
	if err != nil {
		return nil, err
	}
	acum := make(map[string]decimal.Decimal)
	for _, p := range previas {
		if p.Estado == entity.NotaCreditoAnulada {
			continue
		}
		for _, det := range p.Detalles {
			acum[det.ProductoID] = acum[det.ProductoID].Add(det.Cantidad)
		}
	}
	return acum, nil
}

func lineaDe(v *entity.Venta, productoID string) *entity.DetalleVenta {
	for _, det := range v.Items {
		if det.ProductoID == productoID {
			return det
		}
	}
	return nil
}

func todoDevuelto(v *entity.Venta, devuelto map[string]decimal.Decimal) bool {
	for _, det := range v.Items {
		if devuelto[det.ProductoID].LessThan(det.Cantidad) {
			return false
		}
	}
	return true
}
