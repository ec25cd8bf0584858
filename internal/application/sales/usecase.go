package sales

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

// VentaUseCase emite y anula comprobantes de venta. La emisión corre en una
// sola transacción (numeración + stock + kardex + comprobante); los efectos
// de caja y el envío al PSE ocurren después del commit y nunca lo revierten.
type VentaUseCase struct {
	txRunner   ports.TxRunner
	inventario *inventory.MovementUseCase
	caja       *cash.CajaUseCase
	ventas     repository.VentaRepository
	clientes   repository.ClienteRepository
	submitter  Submitter // puede ser nil si la facturación electrónica está inactiva

	sunatActiva bool
	politica    config.PoliticaConfig
	log         *logger.Logger
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	txRunner ports.TxRunner,
	inventario *inventory.MovementUseCase,
	caja *cash.CajaUseCase,
	ventas repository.VentaRepository,
	clientes repository.ClienteRepository,
	submitter Submitter,
	sunatActiva bool,
	politica config.PoliticaConfig,
	log *logger.Logger,
) *VentaUseCase {
	return &VentaUseCase{
		txRunner:    txRunner,
		inventario:  inventario,
		caja:        caja,
		ventas:      ventas,
		clientes:    clientes,
		submitter:   submitter,
		sunatActiva: sunatActiva,
		politica:    politica,
		log:         log,
	}
}

// ClienteInput datos del cliente para la emisión. El tipo de documento se
// infiere del largo del número (8 = DNI, 11 = RUC).
type ClienteInput struct {
	NumeroDocumento string
	Denominacion    string
	Direccion       string
	Telefono        string
}

// ItemInput línea de venta solicitada. PrecioUnitario incluye IGV.
type ItemInput struct {
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// CreateInput entrada para emitir un comprobante de venta.
type CreateInput struct {
	TipoComprobante string // BOLETA | FACTURA | NOTA_VENTA
	FormaPago       string // CONTADO | CREDITO
	MetodoPago      string
	DiasCredito     int // 0 = plazo por defecto de la política
	Cliente         ClienteInput
	Items           []ItemInput
	UsuarioID       string
}

// CreateResult resultado de la emisión. CashWarning queda no vacío cuando el
// comprobante se emitió pero el ingreso a caja no pudo registrarse (caja
// cerrada, etc.): el comprobante es válido igual y el faltante se corrige con
// un movimiento manual.
type CreateResult struct {
	Venta       *entity.Venta
	CashWarning string
}

// Create emite un comprobante: valida la entrada, resuelve serie y cliente,
// y en una transacción asigna el número, descuenta stock con kardex por línea
// y persiste el comprobante con sus totales. Después del commit registra el
// ingreso a caja (toda venta al contado) y dispara el envío al PSE si aplica.
func (uc *VentaUseCase) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	electronico := input.TipoComprobante == entity.ComprobanteBoleta || input.TipoComprobante == entity.ComprobanteFactura
	serie, err := sequence.ResolveSerie(input.TipoComprobante, uc.sunatActiva)
	if err != nil {
		return nil, err
	}

	cliente, err := uc.getOrCreateCliente(input.Cliente)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:              uuid.New().String(),
		TipoComprobante: input.TipoComprobante,
		Serie:           serie,
		FechaEmision:    now,
		Moneda:          "PEN",
		TipoOperacion:   "0101",
		FormaPago:       input.FormaPago,
		MetodoPago:      input.MetodoPago,

		ClienteID:              cliente.ID,
		ClienteTipoDocumento:   cliente.TipoDocumento,
		ClienteNumeroDocumento: cliente.NumeroDocumento,
		ClienteDenominacion:    cliente.NombreRazonSocial,
		ClienteDireccion:       cliente.Direccion,

		UsuarioID:     input.UsuarioID,
		FechaCreacion: now,
	}

	if input.FormaPago == entity.FormaPagoCredito {
		dias := input.DiasCredito
		if dias <= 0 {
			dias = uc.politica.DiasCreditoDefault
		}
		venta.FechaVencimiento = now.AddDate(0, 0, dias)
	} else {
		venta.FechaVencimiento = now
	}

	if electronico && uc.sunatActiva {
		venta.Sunat.Estado = entity.SunatPendiente
	} else {
		venta.Sunat.Estado = entity.SunatNoAplica
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		numero, err := r.Correlativos.NextNumber(input.TipoComprobante, serie)
		if err != nil {
			return err
		}
		venta.Numero = numero
		ref := sequence.Identificador(serie, numero)

		total := decimal.Zero
		for _, it := range input.Items {
			producto, err := r.Productos.GetByID(it.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrProductoNoEncontrado
			}
			// el kardex trabaja en unidades enteras; solo los servicios
			// admiten cantidades fraccionarias
			if !producto.EsServicio && !it.Cantidad.IsInteger() {
				return domain.ErrCantidadFraccionaria
			}

			// valor unitario = precio sin IGV, a 6 decimales como exige el PSE
			valorUnitario := it.PrecioUnitario.Div(uc.politica.IGVFactor()).Round(6)
			subtotal := it.Cantidad.Mul(it.PrecioUnitario).Round(2)
			total = total.Add(subtotal)

			venta.Items = append(venta.Items, &entity.DetalleVenta{
				ID:                      uuid.New().String(),
				VentaID:                 venta.ID,
				ProductoID:              producto.ID,
				Descripcion:             producto.Nombre,
				UnidadMedida:            producto.UnidadMedida,
				Cantidad:                it.Cantidad,
				PrecioUnitario:          it.PrecioUnitario,
				ValorUnitario:           valorUnitario,
				Subtotal:                subtotal,
				PorcentajeIGV:           uc.politica.IGVRate(),
				CodigoTipoAfectacionIGV: producto.CodigoAfectacionIGV(),
			})

			if !producto.EsServicio {
				cantidad := int(it.Cantidad.IntPart())
				_, err = uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
					ProductoID: producto.ID,
					Tipo:       entity.KardexSalida,
					Cantidad:   cantidad,
					Motivo:     fmt.Sprintf("VENTA %s", ref),
					UsuarioID:  input.UsuarioID,
				})
				if err != nil {
					return err
				}
			}
		}

		// Totales del documento: base = total / (1+IGV) a 2 decimales; el IGV
		// es la diferencia para que base + IGV == total exactamente.
		venta.Total = total
		venta.TotalGravada = total.Div(uc.politica.IGVFactor()).Round(2)
		venta.TotalIGV = total.Sub(venta.TotalGravada)

		if input.FormaPago == entity.FormaPagoContado {
			venta.MontoPagado = total
			venta.SaldoPendiente = decimal.Zero
			venta.Estado = entity.EstadoPagadoTotal
		} else {
			venta.MontoPagado = decimal.Zero
			venta.SaldoPendiente = total
			venta.Estado = entity.EstadoEmitido
		}

		if err := r.Ventas.Create(venta); err != nil {
			return err
		}

		if input.FormaPago == entity.FormaPagoContado {
			return r.Amortizaciones.Create(&entity.Amortizacion{
				ID:         uuid.New().String(),
				VentaID:    venta.ID,
				Monto:      total,
				MetodoPago: input.MetodoPago,
				UsuarioID:  input.UsuarioID,
				Fecha:      now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateResult{Venta: venta}

	// Efecto de caja post-commit: toda venta al contado registra el ingreso,
	// con el método de pago en el concepto. Un fallo degrada a advertencia,
	// el comprobante ya emitido no se toca.
	if input.FormaPago == entity.FormaPagoContado {
		ref := sequence.Identificador(venta.Serie, venta.Numero)
		_, cajaErr := uc.caja.Record(ctx, input.UsuarioID, entity.MovimientoIngreso,
			fmt.Sprintf("VENTA %s (%s)", ref, input.MetodoPago), venta.Total, venta.ID)
		if cajaErr != nil {
			result.CashWarning = fmt.Sprintf("venta emitida pero no registrada en caja: %v", cajaErr)
			uc.log.Warn().Err(cajaErr).Str("venta_id", venta.ID).Msg("ingreso a caja no registrado")
		}
	}

	if venta.Sunat.Estado == entity.SunatPendiente && uc.submitter != nil {
		if subErr := uc.submitter.SubmitVenta(ctx, venta.ID); subErr != nil {
			// El estado de acuse quedó en ERROR/RECHAZADO; reintentable vía reenvío.
			uc.log.Warn().Err(subErr).Str("venta_id", venta.ID).Msg("envío al PSE falló")
		} else if actualizada, err := uc.ventas.GetByID(venta.ID); err == nil && actualizada != nil {
			result.Venta = actualizada
		}
	}

	uc.log.Info().
		Str("venta_id", venta.ID).
		Str("comprobante", sequence.Identificador(venta.Serie, venta.Numero)).
		Str("total", venta.Total.StringFixed(2)).
		Msg("venta emitida")
	return result, nil
}

// QuoteInput entrada para generar una cotización.
type QuoteInput struct {
	Cliente   ClienteInput
	Items     []ItemInput
	UsuarioID string
}

// Quote genera una cotización: mismo cálculo de totales que una venta pero sin
// stock, sin caja y sin PSE. Consume numeración de la serie COT1.
func (uc *VentaUseCase) Quote(ctx context.Context, input QuoteInput) (*entity.Venta, error) {
	if len(input.Items) == 0 || input.UsuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range input.Items {
		if it.ProductoID == "" || !it.Cantidad.IsPositive() || !it.PrecioUnitario.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	serie, err := sequence.ResolveSerie(entity.ComprobanteCotizacion, uc.sunatActiva)
	if err != nil {
		return nil, err
	}
	cliente, err := uc.getOrCreateCliente(input.Cliente)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:               uuid.New().String(),
		TipoComprobante:  entity.ComprobanteCotizacion,
		Serie:            serie,
		FechaEmision:     now,
		FechaVencimiento: now.AddDate(0, 0, uc.politica.DiasCreditoDefault),
		Moneda:           "PEN",
		TipoOperacion:    "0101",
		FormaPago:        entity.FormaPagoContado,

		ClienteID:              cliente.ID,
		ClienteTipoDocumento:   cliente.TipoDocumento,
		ClienteNumeroDocumento: cliente.NumeroDocumento,
		ClienteDenominacion:    cliente.NombreRazonSocial,
		ClienteDireccion:       cliente.Direccion,

		Estado:        entity.EstadoCotizado,
		Sunat:         entity.SunatEnvio{Estado: entity.SunatNoAplica},
		UsuarioID:     input.UsuarioID,
		FechaCreacion: now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		numero, err := r.Correlativos.NextNumber(entity.ComprobanteCotizacion, serie)
		if err != nil {
			return err
		}
		venta.Numero = numero

		total := decimal.Zero
		for _, it := range input.Items {
			producto, err := r.Productos.GetByID(it.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrProductoNoEncontrado
			}
			valorUnitario := it.PrecioUnitario.Div(uc.politica.IGVFactor()).Round(6)
			subtotal := it.Cantidad.Mul(it.PrecioUnitario).Round(2)
			total = total.Add(subtotal)
			venta.Items = append(venta.Items, &entity.DetalleVenta{
				ID:                      uuid.New().String(),
				VentaID:                 venta.ID,
				ProductoID:              producto.ID,
				Descripcion:             producto.Nombre,
				UnidadMedida:            producto.UnidadMedida,
				Cantidad:                it.Cantidad,
				PrecioUnitario:          it.PrecioUnitario,
				ValorUnitario:           valorUnitario,
				Subtotal:                subtotal,
				PorcentajeIGV:           uc.politica.IGVRate(),
				CodigoTipoAfectacionIGV: producto.CodigoAfectacionIGV(),
			})
		}
		venta.Total = total
		venta.TotalGravada = total.Div(uc.politica.IGVFactor()).Round(2)
		venta.TotalIGV = total.Sub(venta.TotalGravada)
		venta.SaldoPendiente = total

		return r.Ventas.Create(venta)
	})
	if err != nil {
		return nil, err
	}
	return venta, nil
}

// VoidResult resultado de una anulación. CashWarning análogo al de Create.
type VoidResult struct {
	Venta       *entity.Venta
	CashWarning string
}

// Void anula una venta: restituye el stock con ENTRADAs de kardex por línea y
// marca el comprobante ANULADO, todo en una transacción. El egreso de caja por
// lo cobrado se registra después del commit, degradado a advertencia si falla.
// Un comprobante electrónico ya ACEPTADO por SUNAT no se anula localmente: la
// reversión fiscal correcta es una nota de crédito.
func (uc *VentaUseCase) Void(ctx context.Context, ventaID, usuarioID string) (*VoidResult, error) {
	if ventaID == "" || usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}

	var venta *entity.Venta
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		v, err := r.Ventas.GetByID(ventaID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		switch v.Estado {
		case entity.EstadoEmitido, entity.EstadoPagadoTotal:
			// anulable
		case entity.EstadoAnulado:
			return domain.ErrVentaAnulada
		default:
			return domain.ErrVentaNoAnulable
		}
		if v.EsElectronico() && v.Sunat.Estado == entity.SunatAceptado {
			return domain.ErrVentaNoAnulable
		}

		ref := sequence.Identificador(v.Serie, v.Numero)
		for _, det := range v.Items {
			if det.UnidadMedida == "ZZ" {
				continue // servicios no mueven stock
			}
			_, err := uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
				ProductoID: det.ProductoID,
				Tipo:       entity.KardexEntrada,
				Cantidad:   int(det.Cantidad.IntPart()),
				Motivo:     fmt.Sprintf("ANULACIÓN VENTA %s", ref),
				UsuarioID:  usuarioID,
			})
			if err != nil {
				return err
			}
		}

		v.Estado = entity.EstadoAnulado
		if err := r.Ventas.Update(v); err != nil {
			return err
		}
		venta = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &VoidResult{Venta: venta}
	if venta.MontoPagado.IsPositive() {
		ref := sequence.Identificador(venta.Serie, venta.Numero)
		_, cajaErr := uc.caja.Record(ctx, usuarioID, entity.MovimientoEgreso,
			fmt.Sprintf("ANULACIÓN VENTA %s (%s)", ref, venta.MetodoPago), venta.MontoPagado, venta.ID)
		if cajaErr != nil {
			result.CashWarning = fmt.Sprintf("venta anulada pero el egreso de caja no se registró: %v", cajaErr)
			uc.log.Warn().Err(cajaErr).Str("venta_id", venta.ID).Msg("egreso de caja no registrado")
		}
	}

	uc.log.Info().
		Str("venta_id", venta.ID).
		Str("comprobante", sequence.Identificador(venta.Serie, venta.Numero)).
		Msg("venta anulada")
	return result, nil
}

// Get carga un comprobante completo.
func (uc *VentaUseCase) Get(ctx context.Context, ventaID string) (*entity.Venta, error) {
	v, err := uc.ventas.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// ListByPeriodo lista comprobantes emitidos en el rango [desde, hasta).
func (uc *VentaUseCase) ListByPeriodo(ctx context.Context, desde, hasta time.Time) ([]*entity.Venta, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	return uc.ventas.ListByPeriodo(desde, hasta)
}

func (uc *VentaUseCase) validate(input CreateInput) error {
	switch input.TipoComprobante {
	case entity.ComprobanteBoleta, entity.ComprobanteFactura, entity.ComprobanteNotaVenta:
	default:
		return domain.ErrInvalidInput
	}
	if input.FormaPago != entity.FormaPagoContado && input.FormaPago != entity.FormaPagoCredito {
		return domain.ErrInvalidInput
	}
	if len(input.Items) == 0 || input.UsuarioID == "" {
		return domain.ErrInvalidInput
	}
	for _, it := range input.Items {
		if it.ProductoID == "" || !it.Cantidad.IsPositive() || !it.PrecioUnitario.IsPositive() {
			return domain.ErrInvalidInput
		}
	}
	// factura exige RUC; boleta acepta DNI o RUC
	if input.TipoComprobante == entity.ComprobanteFactura &&
		len(input.Cliente.NumeroDocumento) != entity.LargoRUC {
		return domain.ErrInvalidInput
	}
	if input.Cliente.NumeroDocumento == "" || input.Cliente.Denominacion == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// getOrCreateCliente busca el cliente por número de documento; si no existe lo
// crea, y si existe actualiza denominación/dirección cuando vienen distintas.
func (uc *VentaUseCase) getOrCreateCliente(in ClienteInput) (*entity.Cliente, error) {
	existente, err := uc.clientes.GetByNumeroDocumento(in.NumeroDocumento)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		if (in.Denominacion != "" && in.Denominacion != existente.NombreRazonSocial) ||
			(in.Direccion != "" && in.Direccion != existente.Direccion) {
			existente.NombreRazonSocial = in.Denominacion
			existente.Direccion = in.Direccion
			if err := uc.clientes.Update(existente); err != nil {
				return nil, err
			}
		}
		return existente, nil
	}

	c := &entity.Cliente{
		ID:                uuid.New().String(),
		TipoDocumento:     entity.TipoDocumentoPorLargo(in.NumeroDocumento),
		NumeroDocumento:   in.NumeroDocumento,
		NombreRazonSocial: in.Denominacion,
		Direccion:         in.Direccion,
		Telefono:          in.Telefono,
		FechaCreacion:     time.Now(),
	}
	if err := uc.clientes.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}
