package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de afectación IGV (texto interno; el código SUNAT sale de CodigoAfectacionIGV).
const (
	AfectacionGravado   = "GRAVADO"
	AfectacionExonerado = "EXONERADO"
	AfectacionInafecto  = "INAFECTO"
)

// Producto del catálogo. Stock entero; solo se muta a través del kardex.
// EsServicio marca productos placeholder (servicios) que no descuentan stock.
type Producto struct {
	ID            string
	Nombre        string
	Marca         string
	UnidadMedida  string // "NIU" unidad; "ZZ" servicio
	PrecioVenta   decimal.Decimal
	Stock         int
	StockMinimo   int
	AfectacionIGV string // GRAVADO | EXONERADO | INAFECTO
	EsServicio    bool

	FechaCreacion time.Time
	FechaUpdate   time.Time
}

// CodigoAfectacionIGV mapea la afectación interna al código SUNAT.
func (p *Producto) CodigoAfectacionIGV() string {
	switch p.AfectacionIGV {
	case AfectacionExonerado:
		return "20"
	case AfectacionInafecto:
		return "30"
	default:
		return "10" // gravado
	}
}
