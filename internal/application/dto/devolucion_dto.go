package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// ItemDevolucionRequest línea a devolver. El precio se toma siempre de la
// línea original de la venta, no del request.
type ItemDevolucionRequest struct {
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// CreateDevolucionRequest body para POST /api/devoluciones.
type CreateDevolucionRequest struct {
	VentaID          string                  `json:"venta_id"`
	MotivoDevolucion string                  `json:"motivo_devolucion"`
	Observaciones    string                  `json:"observaciones,omitempty"`
	MetodoReembolso  string                  `json:"metodo_reembolso"`
	Items            []ItemDevolucionRequest `json:"items"`
}

// NotaCreditoResponse nota de crédito en respuestas.
type NotaCreditoResponse struct {
	ID              string          `json:"id"`
	VentaOriginalID string          `json:"venta_original_id"`
	Serie           string          `json:"serie"`
	Numero          int             `json:"numero"`
	FechaEmision    string          `json:"fecha_emision"`
	Motivo          string          `json:"motivo"`
	MetodoReembolso string          `json:"metodo_reembolso"`
	TotalDevuelto   decimal.Decimal `json:"total_devuelto"`
	Estado          string          `json:"estado"`
	EstadoSunat     string          `json:"estado_sunat"`

	Items   []DetalleNotaCreditoResponse `json:"items,omitempty"`
	Warning string                       `json:"warning,omitempty"`
}

// DetalleNotaCreditoResponse línea devuelta en respuestas.
type DetalleNotaCreditoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ToNotaCreditoResponse arma la respuesta desde la entidad.
func ToNotaCreditoResponse(nc *entity.NotaCredito, warning string) NotaCreditoResponse {
	resp := NotaCreditoResponse{
		ID:              nc.ID,
		VentaOriginalID: nc.VentaOriginalID,
		Serie:           nc.Serie,
		Numero:          nc.Numero,
		FechaEmision:    nc.FechaEmision.Format(time.RFC3339),
		Motivo:          nc.MotivoDevolucion,
		MetodoReembolso: nc.MetodoReembolso,
		TotalDevuelto:   nc.TotalDevuelto,
		Estado:          nc.Estado,
		EstadoSunat:     nc.Sunat.Estado,
		Warning:         warning,
	}
	for _, det := range nc.Detalles {
		resp.Items = append(resp.Items, DetalleNotaCreditoResponse{
			ProductoID:     det.ProductoID,
			Descripcion:    det.Descripcion,
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			Subtotal:       det.Subtotal,
		})
	}
	return resp
}
