package sunat

import (
	"strings"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// mapVenta arma el request del PSE desde un comprobante de venta.
// Los montos viajan como string con la escala ya fijada en la emisión.
func mapVenta(v *entity.Venta) *Documento {
	doc := &Documento{
		Documento:      strings.ToLower(v.TipoComprobante), // "boleta" o "factura"
		Serie:          v.Serie,
		Numero:         v.Numero,
		FechaDeEmision: v.FechaEmision.Format("2006-01-02"),
		Moneda:         v.Moneda,
		TipoOperacion:  v.TipoOperacion,

		ClienteTipoDeDocumento:   v.ClienteTipoDocumento,
		ClienteNumeroDeDocumento: v.ClienteNumeroDocumento,
		ClienteDenominacion:      v.ClienteDenominacion,
		ClienteDireccion:         v.ClienteDireccion,

		Total: v.Total.StringFixed(2),
	}

	for _, det := range v.Items {
		doc.Items = append(doc.Items, Item{
			UnidadDeMedida:          det.UnidadMedida,
			Descripcion:             det.Descripcion,
			Cantidad:                det.Cantidad.String(),
			ValorUnitario:           det.ValorUnitario.StringFixed(6),
			PorcentajeIGV:           det.PorcentajeIGV.String(),
			CodigoTipoAfectacionIGV: det.CodigoTipoAfectacionIGV,
			NombreTributo:           "IGV",
		})
	}

	if v.FormaPago == entity.FormaPagoCredito {
		doc.FechaDeVencimiento = v.FechaVencimiento.Format("2006-01-02")
		doc.Cuotas = []Cuota{{
			Importe:     v.Total.StringFixed(2),
			FechaDePago: v.FechaVencimiento.Format("2006-01-02"),
		}}
	}
	return doc
}

// mapNotaCredito arma el request del PSE desde una nota de crédito,
// referenciando el comprobante original. Los datos del cliente salen de la
// venta original (snapshot fiscal).
func mapNotaCredito(nc *entity.NotaCredito, original *entity.Venta) *Documento {
	doc := &Documento{
		Documento:      "nota_credito",
		Serie:          nc.Serie,
		Numero:         nc.Numero,
		FechaDeEmision: nc.FechaEmision.Format("2006-01-02"),
		Moneda:         "PEN",
		TipoOperacion:  "0101",

		DocumentoAfectado: &DocumentoAfectado{
			Documento: strings.ToLower(original.TipoComprobante),
			Serie:     original.Serie,
			Numero:    original.Numero,
		},
		NotaCreditoCodigoTipo: "01", // anulación de operación
		NotaCreditoMotivo:     entity.DescripcionMotivo(nc.MotivoDevolucion),

		ClienteTipoDeDocumento:   original.ClienteTipoDocumento,
		ClienteNumeroDeDocumento: original.ClienteNumeroDocumento,
		ClienteDenominacion:      original.ClienteDenominacion,
		ClienteDireccion:         original.ClienteDireccion,

		Total: nc.TotalDevuelto.StringFixed(2),
	}

	for _, det := range nc.Detalles {
		item := Item{
			UnidadDeMedida: "NIU",
			Descripcion:    det.Descripcion,
			Cantidad:       det.Cantidad.String(),
			PorcentajeIGV:  "18",
			NombreTributo:  "IGV",
		}
		// La línea original del comprobante trae valor unitario y afectación exactos.
		if linea := lineaOriginal(original, det.ProductoID); linea != nil {
			item.UnidadDeMedida = linea.UnidadMedida
			item.ValorUnitario = linea.ValorUnitario.StringFixed(6)
			item.PorcentajeIGV = linea.PorcentajeIGV.String()
			item.CodigoTipoAfectacionIGV = linea.CodigoTipoAfectacionIGV
		} else {
			item.CodigoTipoAfectacionIGV = "10"
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func lineaOriginal(v *entity.Venta, productoID string) *entity.DetalleVenta {
	for _, det := range v.Items {
		if det.ProductoID == productoID {
			return det
		}
	}
	return nil
}
