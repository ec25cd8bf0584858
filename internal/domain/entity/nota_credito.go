package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una nota de crédito.
const (
	NotaCreditoProcesada = "PROCESADA"
	NotaCreditoAnulada   = "ANULADA"
)

// Motivos de devolución aceptados.
const (
	MotivoProductoDefectuoso = "PRODUCTO_DEFECTUOSO"
	MotivoErrorFacturacion   = "ERROR_FACTURACION"
	MotivoClienteDesiste     = "CLIENTE_DESISTE"
	MotivoOtro               = "OTRO"
)

// NotaCredito revierte parcial o totalmente una venta anterior.
// Nunca borra la venta: solo agrega movimientos compensatorios y
// actualiza el estado de liquidación del original.
type NotaCredito struct {
	ID              string
	VentaOriginalID string

	Serie  string
	Numero int

	FechaEmision time.Time

	MotivoDevolucion string
	Observaciones    string
	MetodoReembolso  string // EFECTIVO, NOTA_CREDITO, TRANSFERENCIA

	TotalDevuelto decimal.Decimal

	Estado string // PROCESADA | ANULADA

	Sunat SunatEnvio

	UsuarioID     string
	FechaCreacion time.Time

	Detalles []*DetalleNotaCredito
}

// DetalleNotaCredito es una línea devuelta de la venta original.
type DetalleNotaCredito struct {
	ID            string
	NotaCreditoID string
	ProductoID    string
	Descripcion   string

	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// DescripcionMotivo convierte el código de motivo a texto legible para el PSE.
func DescripcionMotivo(codigo string) string {
	switch codigo {
	case MotivoProductoDefectuoso:
		return "Producto defectuoso o en mal estado"
	case MotivoErrorFacturacion:
		return "Error en la facturación"
	case MotivoClienteDesiste:
		return "Cliente desiste de la compra"
	case MotivoOtro:
		return "Otros motivos"
	default:
		return codigo
	}
}
