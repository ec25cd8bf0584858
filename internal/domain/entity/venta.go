package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante.
const (
	ComprobanteBoleta      = "BOLETA"
	ComprobanteFactura     = "FACTURA"
	ComprobanteNotaVenta   = "NOTA_VENTA"
	ComprobanteNotaCredito = "NOTA_CREDITO"
	ComprobanteCotizacion  = "COTIZACION"
)

// Estados de liquidación de una venta.
// ANULADO es terminal y solo alcanzable desde EMITIDO o PAGADO_TOTAL;
// una venta con devoluciones se revierte con notas de crédito, no se anula.
const (
	EstadoEmitido         = "EMITIDO"
	EstadoPagadoTotal     = "PAGADO_TOTAL"
	EstadoAnulado         = "ANULADO"
	EstadoDevueltoParcial = "DEVUELTO_PARCIAL"
	EstadoDevueltoTotal   = "DEVUELTO_TOTAL"
	EstadoCotizado        = "COTIZADO"
)

// Formas y métodos de pago.
const (
	FormaPagoContado = "CONTADO"
	FormaPagoCredito = "CREDITO"

	MetodoPagoEfectivo = "EFECTIVO"
)

// Estados de envío al PSE SUNAT.
const (
	SunatNoAplica  = "NO_APLICA"
	SunatPendiente = "PENDIENTE"
	SunatAceptado  = "ACEPTADO"
	SunatRechazado = "RECHAZADO"
	SunatError     = "ERROR"
)

// Venta es el comprobante fiscal de venta (boleta, factura, nota de venta o cotización).
// Los datos del cliente se guardan como snapshot: si el cliente cambia de dirección,
// el comprobante histórico no se altera.
type Venta struct {
	ID string

	TipoComprobante string
	Serie           string
	Numero          int

	FechaEmision     time.Time
	FechaVencimiento time.Time // relevante para crédito
	Moneda           string    // "PEN"
	TipoOperacion    string    // "0101" venta interna

	FormaPago  string // CONTADO | CREDITO
	MetodoPago string // EFECTIVO, YAPE, PLIN, TARJETA, TRANSFERENCIA

	ClienteID              string
	ClienteTipoDocumento   string // "1" DNI, "6" RUC
	ClienteNumeroDocumento string
	ClienteDenominacion    string
	ClienteDireccion       string

	TotalGravada decimal.Decimal // base imponible (sin IGV)
	TotalIGV     decimal.Decimal
	Total        decimal.Decimal

	MontoPagado    decimal.Decimal
	SaldoPendiente decimal.Decimal

	Estado string

	Sunat SunatEnvio

	UsuarioID     string
	FechaCreacion time.Time

	Items []*DetalleVenta
}

// SunatEnvio es el estado de acuse del PSE para un comprobante.
// Un fallo de envío nunca invalida el comprobante local: solo deja
// el acuse en ERROR/RECHAZADO, reintentable con un reenvío explícito.
type SunatEnvio struct {
	Estado       string // NO_APLICA, PENDIENTE, ACEPTADO, RECHAZADO, ERROR
	Hash         string
	XMLURL       string
	CdrURL       string
	PdfURL       string
	FechaEnvio   *time.Time
	MensajeError string
}

// DetalleVenta es una línea del comprobante.
// ValorUnitario = PrecioUnitario / (1+IGV); Subtotal = Cantidad × PrecioUnitario.
type DetalleVenta struct {
	ID           string
	VentaID      string
	ProductoID   string
	Descripcion  string
	UnidadMedida string // "NIU" unidad, "ZZ" servicio

	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal // con IGV
	ValorUnitario  decimal.Decimal // sin IGV
	Subtotal       decimal.Decimal

	PorcentajeIGV           decimal.Decimal
	CodigoTipoAfectacionIGV string // "10" gravado, "20" exonerado, "30" inafecto
}

// EsElectronico indica si el tipo de comprobante se envía al PSE.
func (v *Venta) EsElectronico() bool {
	return v.TipoComprobante == ComprobanteBoleta || v.TipoComprobante == ComprobanteFactura
}
