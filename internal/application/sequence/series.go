package sequence

import (
	"fmt"

	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// Series oficiales SUNAT, usadas cuando la facturación electrónica está activa.
var seriesElectronicas = map[string]string{
	entity.ComprobanteBoleta:      "B001",
	entity.ComprobanteFactura:     "F001",
	entity.ComprobanteNotaCredito: "C001",
	entity.ComprobanteNotaVenta:   "N001",
	entity.ComprobanteCotizacion:  "COT1",
}

// Series internas, usadas cuando la facturación electrónica está inactiva.
// Comparten contador por (código, serie), nunca se mezclan con las oficiales.
var seriesInternas = map[string]string{
	entity.ComprobanteBoleta:      "I001",
	entity.ComprobanteFactura:     "IF001",
	entity.ComprobanteNotaCredito: "NC01",
	entity.ComprobanteNotaVenta:   "NI001",
	entity.ComprobanteCotizacion:  "COT1",
}

// ResolveSerie devuelve la serie a usar para un tipo de comprobante según el
// modo de facturación. Tipo desconocido retorna ErrSerieNoConfigurada.
func ResolveSerie(tipoComprobante string, electronica bool) (string, error) {
	m := seriesInternas
	if electronica {
		m = seriesElectronicas
	}
	serie, ok := m[tipoComprobante]
	if !ok {
		return "", domain.ErrSerieNoConfigurada
	}
	return serie, nil
}

// Identificador formatea serie y número como referencia legible ("B001-123").
func Identificador(serie string, numero int) string {
	return fmt.Sprintf("%s-%d", serie, numero)
}
