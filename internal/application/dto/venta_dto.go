package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// ClienteRequest datos del cliente embebidos en la emisión.
type ClienteRequest struct {
	NumeroDocumento string `json:"numero_documento"`
	Denominacion    string `json:"denominacion"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
}

// ItemVentaRequest línea de venta. PrecioUnitario incluye IGV.
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateVentaRequest body para POST /api/ventas.
type CreateVentaRequest struct {
	TipoComprobante string             `json:"tipo_comprobante"` // BOLETA | FACTURA | NOTA_VENTA
	FormaPago       string             `json:"forma_pago"`       // CONTADO | CREDITO
	MetodoPago      string             `json:"metodo_pago"`
	DiasCredito     int                `json:"dias_credito,omitempty"`
	Cliente         ClienteRequest     `json:"cliente"`
	Items           []ItemVentaRequest `json:"items"`
}

// CreateCotizacionRequest body para POST /api/cotizaciones.
type CreateCotizacionRequest struct {
	Cliente ClienteRequest     `json:"cliente"`
	Items   []ItemVentaRequest `json:"items"`
}

// VentaResponse comprobante en respuestas. Warning queda no vacío cuando un
// efecto secundario (caja) no pudo registrarse pero el comprobante es válido.
type VentaResponse struct {
	ID              string `json:"id"`
	TipoComprobante string `json:"tipo_comprobante"`
	Serie           string `json:"serie"`
	Numero          int    `json:"numero"`
	FechaEmision    string `json:"fecha_emision"`
	Moneda          string `json:"moneda"`
	FormaPago       string `json:"forma_pago"`
	MetodoPago      string `json:"metodo_pago,omitempty"`

	ClienteDenominacion    string `json:"cliente_denominacion"`
	ClienteNumeroDocumento string `json:"cliente_numero_documento"`

	TotalGravada decimal.Decimal `json:"total_gravada"`
	TotalIGV     decimal.Decimal `json:"total_igv"`
	Total        decimal.Decimal `json:"total"`

	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`

	Estado      string `json:"estado"`
	EstadoSunat string `json:"estado_sunat"`
	HashSunat   string `json:"hash_sunat,omitempty"`
	PdfURL      string `json:"pdf_url,omitempty"`

	Items   []DetalleVentaResponse `json:"items,omitempty"`
	Warning string                 `json:"warning,omitempty"`
}

// DetalleVentaResponse línea del comprobante en respuestas.
type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	ValorUnitario  decimal.Decimal `json:"valor_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ToVentaResponse arma la respuesta desde la entidad.
func ToVentaResponse(v *entity.Venta, warning string) VentaResponse {
	resp := VentaResponse{
		ID:                     v.ID,
		TipoComprobante:        v.TipoComprobante,
		Serie:                  v.Serie,
		Numero:                 v.Numero,
		FechaEmision:           v.FechaEmision.Format(time.RFC3339),
		Moneda:                 v.Moneda,
		FormaPago:              v.FormaPago,
		MetodoPago:             v.MetodoPago,
		ClienteDenominacion:    v.ClienteDenominacion,
		ClienteNumeroDocumento: v.ClienteNumeroDocumento,
		TotalGravada:           v.TotalGravada,
		TotalIGV:               v.TotalIGV,
		Total:                  v.Total,
		MontoPagado:            v.MontoPagado,
		SaldoPendiente:         v.SaldoPendiente,
		Estado:                 v.Estado,
		EstadoSunat:            v.Sunat.Estado,
		HashSunat:              v.Sunat.Hash,
		PdfURL:                 v.Sunat.PdfURL,
		Warning:                warning,
	}
	for _, det := range v.Items {
		resp.Items = append(resp.Items, DetalleVentaResponse{
			ProductoID:     det.ProductoID,
			Descripcion:    det.Descripcion,
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			ValorUnitario:  det.ValorUnitario,
			Subtotal:       det.Subtotal,
		})
	}
	return resp
}
